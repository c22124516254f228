// Package hattrie implements an in-memory, ordered string dictionary built
// on a hybrid array-hash trie: cascaded boot-level fanout down to Radix
// nodes, which route into Bucket and Pail hash tables, which in turn hold
// small Array leaves kept in insertion order (the cursor sorts each leaf
// as it visits it). Every node lives in one arena allocation and is
// referenced by a single tagged pointer word; lookups and inserts still
// make short-lived Go heap allocations for folded residues and trails.
package hattrie

import (
	"unsafe"

	"github.com/ordmap/hattrie/pkg/arena"
	"github.com/ordmap/hattrie/pkg/xunsafe"
)

// Present is returned in place of an aux payload when a Trie is used as a
// set (Config.AuxWidth == 0): it marks "key exists" without carrying data.
var Present = []byte{}

// Trie is an in-memory ordered string dictionary. The zero value is not
// usable; construct one with Open.
type Trie struct {
	cfg   Config
	alloc arena.Recycled
	boot  []slot

	// arrayFree holds one free-list head per size class, keyed by the
	// trie's own SizeClasses index rather than arena.Recycled's generic
	// power-of-two bucketing: most of our classes aren't powers of two,
	// and Recycled files such a block under the power of two below its
	// size, so it would never be handed back for a request of that size.
	arrayFree []xunsafe.Addr[byte]
}

// Open constructs a Trie with the given tunables. Unset BucketSlots,
// BucketMax and SizeClasses are filled from their defaults; a zero
// BootLevels, PailSlots or AuxWidth is kept as given.
func Open(cfg Config) *Trie {
	cfg.normalize()

	t := &Trie{cfg: cfg}

	n := 1
	for i := 0; i < cfg.BootLevels; i++ {
		n *= 128
	}
	t.boot = make([]slot, n)

	if cfg.BootLevels == 0 {
		t.boot[0] = newBucket(&t.alloc, cfg.BucketSlots).slot()
	}

	return t
}

// Close releases every arena block backing the trie. The Trie must not be
// used afterward.
func (t *Trie) Close() {
	t.alloc.Reset()
	t.boot = nil
}

// bootSplit consumes the boot-level digits of key, returning the boot
// array index, the residue left over for the rest of the descent, and the
// trail of high bits those digits discarded.
func (t *Trie) bootSplit(key []byte) (idx int, residue []byte, trail trailBits) {
	idx = 0
	for i := 0; i < t.cfg.BootLevels; i++ {
		var b byte
		if i < len(key) {
			b = key[i]
		}
		idx = idx<<7 | int(b&0x7F)
		trail = trail.push(b&0x80 != 0)
	}

	n := t.cfg.BootLevels
	if n > len(key) {
		n = len(key)
	}

	return idx, key[n:], trail
}

// Find looks up key without modifying the trie. ok is false if key is
// absent.
func (t *Trie) Find(key []byte) (aux []byte, ok bool) {
	idx, residue, trail := t.bootSplit(key)
	return t.findSlot(&t.boot[idx], residue, trail)
}

// Cell returns the aux payload cell for key, creating it (and any
// intermediate nodes) if key is not already present. The returned slice
// aliases trie-owned memory and is valid until the next structural change
// beneath the same boot slot (an insert that triggers a promotion or
// burst may relocate it).
func (t *Trie) Cell(key []byte) []byte {
	idx, residue, trail := t.bootSplit(key)

	if aux, ok := t.findSlot(&t.boot[idx], residue, trail); ok {
		return aux
	}

	init := t.zeroAux()
	return t.growSlot(&t.boot[idx], residue, init, trail)
}

// Data constructs a zero-filled buffer of size bytes in the trie's arena,
// suitable for passing to a lower-level insert helper. The buffer is valid
// until Close.
func (t *Trie) Data(size int) []byte { return unsafe.Slice(t.alloc.Alloc(size), size) }

// allocArray returns an Array node of the given size class, preferring a
// block popped from arrayFree's free list over a fresh arena allocation.
func (t *Trie) allocArray(class int) array {
	if t.arrayFree != nil {
		if p := t.arrayFree[class].AssertValid(); p != nil {
			t.arrayFree[class] = xunsafe.Addr[byte](*xunsafe.Cast[uintptr](p))

			size := t.cfg.SizeClasses[class]
			xunsafe.Clear(p, size)

			h := xunsafe.Cast[arrayHeader](p)
			*h = arrayHeader{class: uint16(class)}

			return array{h: h, buf: unsafe.Slice(p, size)}
		}
	}

	return newArray(&t.alloc, &t.cfg, class)
}

// releaseArray returns an Array node's storage to arrayFree, keyed by its
// own size class so a later allocArray of the same class is guaranteed a
// block of exactly that size back.
func (t *Trie) releaseArray(a array) {
	if t.arrayFree == nil {
		t.arrayFree = make([]xunsafe.Addr[byte], len(t.cfg.SizeClasses))
	}

	class := int(a.h.class)
	p := &a.buf[0]

	*xunsafe.Cast[uintptr](p) = uintptr(t.arrayFree[class])
	t.arrayFree[class] = xunsafe.AddrOf(p)
}

func (t *Trie) zeroAux() []byte {
	if t.cfg.AuxWidth == 0 {
		return nil
	}
	return make([]byte, t.cfg.AuxWidth)
}

// findSlot walks the node chain rooted at cur looking for residue,
// without creating or mutating anything. trail carries the high bits
// already dropped by the boot/radix descent that brought us to cur.
func (t *Trie) findSlot(cur *slot, residue []byte, trail trailBits) ([]byte, bool) {
	for {
		s := *cur
		if s.empty() {
			return nil, false
		}

		switch s.tag() {
		case tagRadix:
			rn := wrapRadix(s.addr())
			var b byte
			if len(residue) > 0 {
				b = residue[0]
				residue = residue[1:]
			}
			trail = trail.push(b&0x80 != 0)
			cur = &rn.children[b&0x7F]

		case tagBucket:
			bkt := wrapBucket(s.addr())
			folded := trail.fold(residue)
			h := residueHash(folded) % uint32(bkt.n())
			slots := bkt.slots()
			cur = &slots[h]

		case tagPail:
			pl := wrapPail(s.addr())
			folded := trail.fold(residue)
			h := residueHash(folded) % uint32(pl.n())
			slots := pl.slots()
			cur = &slots[h]

		case tagArray:
			arr := wrapArray(&t.cfg, s.addr())
			folded := trail.fold(residue)
			if t.cfg.AuxWidth == 0 {
				if _, _, ok := arr.find(&t.cfg, folded); ok {
					return Present, true
				}
				return nil, false
			}
			aux, _, ok := arr.find(&t.cfg, folded)
			return aux, ok
		}
	}
}

// growCtx tracks the nearest enclosing Bucket/Pail seen during a single
// growSlot walk, so an overflow deep in the chain can be routed to the
// right burst target, and so a genuinely new key increments the right
// Bucket's live counter exactly once.
type growCtx struct {
	hasBkt      bool
	bkt         bucket
	bktSlotPtr  *slot
	hasPail     bool
	pl          pail
	pailSlotPtr *slot
	countNewKey bool
}

// growSlot walks the node chain rooted at cur, creating and bursting
// nodes as needed until residue is stored, and returns the aux cell for
// the (possibly pre-existing) entry. trail carries the high bits already
// dropped by the boot/radix descent that brought us to cur.
func (t *Trie) growSlot(cur *slot, residue, aux []byte, trail trailBits) []byte {
	return t.growSlotCtx(cur, residue, aux, &growCtx{countNewKey: true}, trail)
}

func (t *Trie) growSlotCtx(cur *slot, residue, aux []byte, ctx *growCtx, trail trailBits) []byte {
	for {
		s := *cur

		if s.empty() {
			folded := trail.fold(residue)
			a := newArrayFor(t, folded, aux)
			*cur = a.slot()
			res := a.auxAt(&t.cfg, a.count()-1)
			return t.afterStore(ctx, residue, trail, res)
		}

		switch s.tag() {
		case tagRadix:
			rn := wrapRadix(s.addr())
			var b byte
			if len(residue) > 0 {
				b = residue[0]
				residue = residue[1:]
			}
			trail = trail.push(b&0x80 != 0)
			cur = &rn.children[b&0x7F]

		case tagBucket:
			ctx.bktSlotPtr = cur
			ctx.bkt = wrapBucket(s.addr())
			ctx.hasBkt = true
			ctx.hasPail = false

			folded := trail.fold(residue)
			h := residueHash(folded) % uint32(ctx.bkt.n())
			slots := ctx.bkt.slots()
			cur = &slots[h]

		case tagPail:
			ctx.pailSlotPtr = cur
			ctx.pl = wrapPail(s.addr())
			ctx.hasPail = true

			folded := trail.fold(residue)
			h := residueHash(folded) % uint32(ctx.pl.n())
			slots := ctx.pl.slots()
			cur = &slots[h]

		case tagArray:
			arr := wrapArray(&t.cfg, s.addr())
			folded := trail.fold(residue)

			if existing, _, found := arr.find(&t.cfg, folded); found {
				return t.auxResult(existing)
			}

			if arr.fits(&t.cfg, len(folded)) {
				arr.insert(&t.cfg, folded, aux)
				res := arr.auxAt(&t.cfg, arr.count()-1)
				return t.afterStore(ctx, residue, trail, res)
			}

			if na, ok := promoteArray(t, arr, folded, aux); ok {
				t.releaseArray(arr)
				*cur = na.slot()
				res := na.auxAt(&t.cfg, na.count()-1)
				return t.afterStore(ctx, residue, trail, res)
			}

			switch {
			case ctx.hasPail && ctx.hasBkt:
				t.burstBucketToRadix(ctx.bktSlotPtr, ctx.bkt, trail)
				cur = ctx.bktSlotPtr
				ctx.hasBkt, ctx.hasPail = false, false

			case ctx.hasPail:
				t.burstPailToBucket(ctx.pailSlotPtr, ctx.pl, trail)
				cur = ctx.pailSlotPtr
				ctx.hasPail = false

			case t.cfg.PailSlots > 0:
				t.burstArrayToPail(cur, arr, trail)

			case ctx.hasBkt:
				t.burstBucketToRadix(ctx.bktSlotPtr, ctx.bkt, trail)
				cur = ctx.bktSlotPtr
				ctx.hasBkt = false

			default:
				bkt := newBucket(&t.alloc, t.cfg.BucketSlots)
				*cur = bkt.slot()
				arr.forEach(&t.cfg, func(folded, aux []byte) {
					h := residueHash(folded) % uint32(bkt.n())
					slots := bkt.slots()
					own := trailBits{bits: folded[:len(trail.bits)], n: trail.n}
					t.growSlotCtx(&slots[h], own.unfold(folded), aux, &growCtx{hasBkt: true, bkt: bkt, bktSlotPtr: cur}, own)
				})
				bkt.h.live = int32(arr.count())
				t.releaseArray(arr)
			}
		}
	}
}

// afterStore counts a newly stored key against its enclosing Bucket and
// returns the key's aux cell, looking it up again when the count bursts
// the Bucket and so moves the entry res pointed at.
func (t *Trie) afterStore(ctx *growCtx, residue []byte, trail trailBits, res []byte) []byte {
	if !ctx.countNewKey || !ctx.hasBkt {
		return t.auxResult(res)
	}

	live := ctx.bkt.incLive()
	if live > t.cfg.BucketMax {
		t.burstBucketToRadix(ctx.bktSlotPtr, ctx.bkt, trail)
		res, _ = t.findSlot(ctx.bktSlotPtr, residue, trail)
	}

	return t.auxResult(res)
}

func (t *Trie) auxResult(aux []byte) []byte {
	if t.cfg.AuxWidth == 0 {
		return Present
	}
	return aux
}
