//go:build go1.20

package xunsafe

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/ordmap/hattrie/pkg/xunsafe/layout"
)

// Addr is a typed address: a uintptr that remembers what it points at, for
// use in structures (such as an arena's slab chain or a tagged child slot)
// that cannot hold ordinary Go pointers without defeating the allocator's
// memory model.
//
// An Addr carries no GC-visible pointer; whatever it addresses must be kept
// alive by other means (typically, by belonging to an arena that is itself
// reachable).
type Addr[T any] uintptr

// AddrOf returns the address of p.
func AddrOf[T any](p *T) Addr[T] {
	return Addr[T](uintptr(unsafe.Pointer(p)))
}

// EndOf returns the address just past the last element of s.
func EndOf[T any](s []T) Addr[T] {
	return AddrOf(unsafe.SliceData(s)).Add(len(s))
}

// AssertValid converts this address back into a pointer.
//
// A zero Addr converts to a nil pointer; callers that need to distinguish
// "empty" from "valid" should do so before dereferencing.
func (a Addr[T]) AssertValid() *T {
	return (*T)(unsafe.Pointer(uintptr(a)))
}

// Add offsets a by n elements of T.
func (a Addr[T]) Add(n int) Addr[T] {
	return a + Addr[T](n*layout.Size[T]())
}

// ByteAdd offsets a by n bytes, without scaling by the size of T.
func (a Addr[T]) ByteAdd(n int) Addr[T] {
	return a + Addr[T](n)
}

// Sub returns the number of elements of T between a and b.
func (a Addr[T]) Sub(b Addr[T]) int {
	return int(a-b) / layout.Size[T]()
}

// Padding returns the number of bytes needed to round a up to align, which
// must be a power of two.
func (a Addr[T]) Padding(align int) int {
	return int(a.RoundUpTo(align) - a)
}

// RoundUpTo rounds a up to the nearest multiple of align, which must be a
// power of two.
func (a Addr[T]) RoundUpTo(align int) Addr[T] {
	mask := Addr[T](align - 1)
	return (a + mask) &^ mask
}

// SignBit returns whether the top bit of a is set.
func (a Addr[T]) SignBit() bool {
	return a&(1<<(bits.UintSize-1)) != 0
}

// SignBitMask returns all-ones if SignBit is set, all-zeros otherwise.
func (a Addr[T]) SignBitMask() Addr[T] {
	return Addr[T](int(a) >> (bits.UintSize - 1))
}

// ClearSignBit clears the top bit of a.
func (a Addr[T]) ClearSignBit() Addr[T] {
	return a &^ (1 << (bits.UintSize - 1))
}

// Format implements fmt.Formatter so that %v prints a hex address and %x/%X
// print the bare hex digits, without routing through a String method (which
// would hex-encode the "0x" prefix as bytes instead).
func (a Addr[T]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'x':
		fmt.Fprintf(f, "%x", uintptr(a))
	case 'X':
		fmt.Fprintf(f, "%X", uintptr(a))
	default:
		fmt.Fprintf(f, "0x%x", uintptr(a))
	}
}
