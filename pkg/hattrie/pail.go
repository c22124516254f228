package hattrie

import (
	"unsafe"

	"github.com/ordmap/hattrie/pkg/arena"
	"github.com/ordmap/hattrie/pkg/xunsafe"
)

// pailHeader is followed by n trailing slots, each holding an Array (or
// empty). Pail slots never hold anything but Array: when the Array at a
// slot can no longer grow, the whole Pail bursts into a Bucket, or, when
// the Pail itself sits in a Bucket slot, that Bucket bursts into a Radix. The
// trailing field pads the header to slot's 8-byte alignment, matching the
// offset xunsafe.Beyond computes for the slot array that follows.
type pailHeader struct {
	n int32
	_ int32
}

const pailHeaderSize = int(unsafe.Sizeof(pailHeader{}))
const slotSize = int(unsafe.Sizeof(slot(0)))

type pail struct {
	h *pailHeader
	p xunsafe.Addr[byte]
}

func newPail(al arena.Allocator, n int) pail {
	size := pailHeaderSize + n*slotSize
	p := al.Alloc(size)

	h := xunsafe.Cast[pailHeader](p)
	*h = pailHeader{n: int32(n)}

	return pail{h: h, p: xunsafe.AddrOf(p)}
}

func wrapPail(addr xunsafe.Addr[byte]) pail {
	return pail{h: xunsafe.Cast[pailHeader](addr.AssertValid()), p: addr}
}

func (p pail) slot() slot { return makeSlot(tagPail, p.p) }

func (p pail) n() int { return int(p.h.n) }

func (p pail) slots() []slot {
	return xunsafe.Beyond[slot](p.h).Slice(p.n())
}

func (p pail) size() int { return pailHeaderSize + p.n()*slotSize }

func (p pail) release(al arena.Allocator) {
	al.Release(p.p.AssertValid(), p.size())
}
