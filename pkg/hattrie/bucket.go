package hattrie

import (
	"unsafe"

	"github.com/ordmap/hattrie/pkg/arena"
	"github.com/ordmap/hattrie/pkg/xunsafe"
)

// bucketHeader is followed by n trailing slots, each holding an Array or a
// Pail (or empty). live counts keys actually stored beneath this Bucket; it
// is incremented exactly once per successful insert of a new key, before
// the burst-into-Radix threshold is checked, so a cascade of bursts
// triggered by that single insert never double-counts it.
type bucketHeader struct {
	n    int32
	live int32
}

const bucketHeaderSize = int(unsafe.Sizeof(bucketHeader{}))

type bucket struct {
	h *bucketHeader
	p xunsafe.Addr[byte]
}

func newBucket(al arena.Allocator, n int) bucket {
	size := bucketHeaderSize + n*slotSize
	p := al.Alloc(size)

	h := xunsafe.Cast[bucketHeader](p)
	*h = bucketHeader{n: int32(n)}

	return bucket{h: h, p: xunsafe.AddrOf(p)}
}

func wrapBucket(addr xunsafe.Addr[byte]) bucket {
	return bucket{h: xunsafe.Cast[bucketHeader](addr.AssertValid()), p: addr}
}

func (b bucket) slot() slot { return makeSlot(tagBucket, b.p) }

func (b bucket) n() int { return int(b.h.n) }

func (b bucket) live() int { return int(b.h.live) }

// incLive records one more key beneath this Bucket and returns the new
// total. Callers check that total against Config.BucketMax immediately
// after, exactly once per insert.
func (b bucket) incLive() int {
	b.h.live++
	return int(b.h.live)
}

func (b bucket) slots() []slot {
	return xunsafe.Beyond[slot](b.h).Slice(b.n())
}

func (b bucket) size() int { return bucketHeaderSize + b.n()*slotSize }

func (b bucket) release(al arena.Allocator) {
	al.Release(b.p.AssertValid(), b.size())
}
