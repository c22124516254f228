package hattrie

import (
	"bytes"
	"unsafe"

	"github.com/ordmap/hattrie/internal/debug"
	"github.com/ordmap/hattrie/pkg/arena"
	"github.com/ordmap/hattrie/pkg/xunsafe"
)

// arrayHeader is the fixed prefix of every Array allocation. The rest of
// the allocation — SizeClasses[class] - arrayHeaderSize bytes — holds a
// forward-growing region of packed key residues starting right after the
// header, and a backward-growing region of aux slots ending at the tail
// of the allocation.
type arrayHeader struct {
	class    uint16 // index into the owning Trie's sorted size-class table
	count    uint8  // number of (residue, aux) pairs stored; capped at 255
	_        uint8
	keyBytes uint16 // bytes currently used by the forward key region
}

const arrayHeaderSize = int(unsafe.Sizeof(arrayHeader{}))

// array is a handle onto one Array node: its header plus the byte region
// that follows it, sliced to the node's full size class.
type array struct {
	h   *arrayHeader
	buf []byte
}

func newArray(al arena.Allocator, cfg *Config, class int) array {
	size := cfg.SizeClasses[class]
	p := al.Alloc(size)
	buf := unsafe.Slice(p, size)

	h := xunsafe.Cast[arrayHeader](p)
	*h = arrayHeader{class: uint16(class)}

	return array{h: h, buf: buf}
}

func wrapArray(cfg *Config, addr xunsafe.Addr[byte]) array {
	p := addr.AssertValid()
	h := xunsafe.Cast[arrayHeader](p)
	size := cfg.SizeClasses[h.class]

	return array{h: h, buf: unsafe.Slice(p, size)}
}

func (a array) slot() slot { return makeSlot(tagArray, xunsafe.AddrOf(&a.buf[0])) }

func (a array) count() int { return int(a.h.count) }

func (a array) keyRegion() []byte {
	return a.buf[arrayHeaderSize : arrayHeaderSize+int(a.h.keyBytes)]
}

// auxAt returns the aux slot paired with the i-th residue encountered
// scanning the key region from its start. Slots grow backward from the end
// of the allocation, so the i-th slot (counting from the end) is at
// len(buf) - (i+1)*width .. len(buf) - i*width.
func (a array) auxAt(cfg *Config, i int) []byte {
	w := cfg.AuxWidth
	if w == 0 {
		return nil
	}

	end := len(a.buf) - i*w
	return a.buf[end-w : end]
}

func (a array) freeGap(cfg *Config) int {
	keyEnd := arrayHeaderSize + int(a.h.keyBytes)
	auxStart := len(a.buf) - a.count()*cfg.AuxWidth

	return auxStart - keyEnd
}

// fits reports whether one more residue of length n can be appended without
// promoting to a larger size class.
func (a array) fits(cfg *Config, n int) bool {
	if a.count() >= 255 {
		return false
	}

	need := encodedLenSize(n) + n + cfg.AuxWidth

	return need <= a.freeGap(cfg)
}

// find scans the key region front to back for an exact residue match.
func (a array) find(cfg *Config, residue []byte) (aux []byte, index int, ok bool) {
	kr := a.keyRegion()
	off := 0

	for i := 0; i < a.count(); i++ {
		n, prefix := getEncodedLen(kr[off:])
		start := off + prefix
		candidate := kr[start : start+n]

		if bytes.Equal(candidate, residue) {
			return a.auxAt(cfg, i), i, true
		}

		off = start + n
	}

	return nil, -1, false
}

// insert appends residue (and its aux payload, if any) as a new entry.
// Callers must have already verified fits returns true.
func (a array) insert(cfg *Config, residue, aux []byte) {
	debug.Assert(a.fits(cfg, len(residue)), "insert called on an array with no room for a %d-byte residue", len(residue))

	prefix := encodedLenSize(len(residue))
	keyEnd := arrayHeaderSize + int(a.h.keyBytes)

	putEncodedLen(a.buf[keyEnd:], len(residue))
	copy(a.buf[keyEnd+prefix:], residue)
	a.h.keyBytes += uint16(prefix + len(residue))

	idx := a.count()
	a.h.count++

	if cfg.AuxWidth > 0 && aux != nil {
		copy(a.auxAt(cfg, idx), aux)
	}
}

// forEach visits every (residue, aux) pair in insertion order.
func (a array) forEach(cfg *Config, fn func(residue, aux []byte)) {
	kr := a.keyRegion()
	off := 0

	for i := 0; i < a.count(); i++ {
		n, prefix := getEncodedLen(kr[off:])
		start := off + prefix
		residue := kr[start : start+n]

		fn(residue, a.auxAt(cfg, i))

		off = start + n
	}
}

// promoteArray builds a replacement for old one size class larger (the
// smallest class that fits every existing entry plus the new one), copying
// the key region verbatim and the aux slots preserving pairing. Reports
// false if no configured class is large enough, in which case the caller
// must burst instead.
func promoteArray(t *Trie, old array, residue, aux []byte) (array, bool) {
	needed := arrayHeaderSize + int(old.h.keyBytes) + encodedLenSize(len(residue)) + len(residue) +
		(old.count()+1)*t.cfg.AuxWidth

	class := fittingClass(t.cfg.SizeClasses, needed)
	if class < 0 {
		return array{}, false
	}

	na := t.allocArray(class)

	copy(na.buf[arrayHeaderSize:arrayHeaderSize+int(old.h.keyBytes)], old.keyRegion())
	na.h.keyBytes = old.h.keyBytes
	na.h.count = old.h.count

	for i := 0; i < old.count(); i++ {
		copy(na.auxAt(&t.cfg, i), old.auxAt(&t.cfg, i))
	}

	na.insert(&t.cfg, residue, aux)

	return na, true
}

// newArrayFor allocates a brand-new Array sized to the smallest class that
// fits a single residue, and stores it as the array's first entry. Panics
// if no configured class is large enough — a caller contract violation,
// not a runtime condition this package recovers from (see DESIGN.md).
func newArrayFor(t *Trie, residue, aux []byte) array {
	needed := arrayHeaderSize + encodedLenSize(len(residue)) + len(residue) + t.cfg.AuxWidth

	class := fittingClass(t.cfg.SizeClasses, needed)
	if class < 0 {
		panic("hattrie: residue does not fit in any configured size class")
	}

	a := t.allocArray(class)
	a.insert(&t.cfg, residue, aux)

	return a
}

func fittingClass(classes []int, needed int) int {
	for i, sz := range classes {
		if sz >= needed {
			return i
		}
	}

	return -1
}

// Residue lengths are encoded as one byte if < 128, else two bytes: the
// first with its high bit set holding the low 7 bits, the second holding
// bits 7-13 (sufficient for the 16383-byte maximum key length).
func encodedLenSize(n int) int {
	if n < 128 {
		return 1
	}

	return 2
}

func putEncodedLen(dst []byte, n int) int {
	if n < 128 {
		dst[0] = byte(n)
		return 1
	}

	dst[0] = 0x80 | byte(n&0x7F)
	dst[1] = byte(n >> 7)

	return 2
}

func getEncodedLen(src []byte) (n, prefixLen int) {
	if src[0]&0x80 == 0 {
		return int(src[0]), 1
	}

	return int(src[0]&0x7F) | int(src[1])<<7, 2
}
