package hattrie

import (
	"github.com/ordmap/hattrie/pkg/arena"
	"github.com/ordmap/hattrie/pkg/xunsafe"
)

// radixNode is a fixed 128-way fanout, indexed by the low 7 bits of the
// next residue byte (or 0 past the end of a residue shorter than the
// current depth). Unlike Bucket and Pail, a Radix never bursts or
// promotes once created: it is purely an address-space router.
type radixNode struct {
	children [128]slot
}

func newRadix(al arena.Allocator) *radixNode {
	return arena.New(al, radixNode{})
}

func wrapRadix(addr xunsafe.Addr[byte]) *radixNode {
	return xunsafe.Cast[radixNode](addr.AssertValid())
}

func (n *radixNode) slot() slot {
	return makeSlot(tagRadix, xunsafe.AddrOf(xunsafe.Cast[byte](n)))
}

func (n *radixNode) release(al arena.Allocator) {
	arena.Free(al, n)
}
