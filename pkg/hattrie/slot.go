package hattrie

import "github.com/ordmap/hattrie/pkg/xunsafe"

// tag identifies the node variant referenced by a slot. It occupies the low
// 3 bits of every slot word; the arena guarantees 8-byte alignment so these
// bits never collide with a node's base address.
type tag uintptr

const (
	tagRadix  tag = 0
	tagBucket tag = 1
	tagArray  tag = 2
	tagPail   tag = 3

	tagMask uintptr = 0x7
)

// slot is a single machine word: a node's base address with a tag packed
// into its low bits. The zero slot means "empty" regardless of tag.
type slot uintptr

func makeSlot(tag tag, addr xunsafe.Addr[byte]) slot {
	if uintptr(addr)&tagMask != 0 {
		panic("hattrie: node address is not 8-byte aligned")
	}

	return slot(uintptr(addr) | uintptr(tag))
}

func (s slot) empty() bool { return s == 0 }

func (s slot) tag() tag { return tag(uintptr(s) & tagMask) }

func (s slot) addr() xunsafe.Addr[byte] {
	return xunsafe.Addr[byte](uintptr(s) &^ tagMask)
}
