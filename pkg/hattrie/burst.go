package hattrie

import "github.com/ordmap/hattrie/internal/debug"

// burstArrayToPail converts the Array referenced by *cur into a Pail,
// rehashing every stored entry into the new Pail's slots. *cur is
// rewritten in place; the old Array is released once every entry has been
// copied out. trail is the descent's high-bit trail at this array's
// depth — unchanged by this burst, since no further key byte is consumed.
// Only its length is taken from the argument: each entry keeps the trail
// bits folded onto its own front.
func (t *Trie) burstArrayToPail(cur *slot, arr array, trail trailBits) {
	debug.Log(nil, "burst", "array(class=%d,n=%d) -> pail(n=%d)", arr.h.class, arr.count(), t.cfg.PailSlots)

	pl := newPail(&t.alloc, t.cfg.PailSlots)
	*cur = pl.slot()

	arr.forEach(&t.cfg, func(folded, aux []byte) {
		h := residueHash(folded) % uint32(pl.n())
		slots := pl.slots()

		ctx := &growCtx{hasPail: true, pl: pl, pailSlotPtr: cur}
		own := trailBits{bits: folded[:len(trail.bits)], n: trail.n}
		t.growSlotCtx(&slots[h], own.unfold(folded), aux, ctx, own)
	})

	t.releaseArray(arr)
}

// burstPailToBucket converts the Pail referenced by *pailSlotPtr into a
// Bucket, rehashing every entry held by every one of the Pail's Array
// slots into the new Bucket's slots. trail is unchanged for the same
// reason as burstArrayToPail.
func (t *Trie) burstPailToBucket(pailSlotPtr *slot, pl pail, trail trailBits) {
	debug.Log(nil, "burst", "pail(n=%d) -> bucket(n=%d)", pl.n(), t.cfg.BucketSlots)

	bkt := newBucket(&t.alloc, t.cfg.BucketSlots)
	*pailSlotPtr = bkt.slot()

	for _, s := range pl.slots() {
		if s.empty() {
			continue
		}

		arr := wrapArray(&t.cfg, s.addr())
		arr.forEach(&t.cfg, func(folded, aux []byte) {
			h := residueHash(folded) % uint32(bkt.n())
			slots := bkt.slots()

			ctx := &growCtx{hasBkt: true, bkt: bkt, bktSlotPtr: pailSlotPtr}
			own := trailBits{bits: folded[:len(trail.bits)], n: trail.n}
			t.growSlotCtx(&slots[h], own.unfold(folded), aux, ctx, own)
		})
		bkt.h.live += int32(arr.count())
		t.releaseArray(arr)
	}

	pl.release(&t.alloc)
}

// burstBucketToRadix converts the Bucket referenced by *bktSlotPtr into a
// Radix, peeling one leading byte off every stored entry's literal suffix
// (0 if the suffix is already exhausted) to pick the child slot, then
// reinserting the remainder through the ordinary grow path — which may
// itself cascade through further Array/Pail/Bucket creation and bursts.
// trail gives the bucket's own depth; each redistributed entry extends
// the trail bits folded onto its own front by the one byte this burst
// consumes.
func (t *Trie) burstBucketToRadix(bktSlotPtr *slot, bkt bucket, trail trailBits) {
	debug.Log(nil, "burst", "bucket(n=%d,live=%d) -> radix", bkt.n(), bkt.live())

	rn := newRadix(&t.alloc)
	*bktSlotPtr = rn.slot()

	redistribute := func(folded, aux []byte) {
		own := trailBits{bits: folded[:len(trail.bits)], n: trail.n}
		raw := own.unfold(folded)

		var b byte
		rest := raw
		if len(raw) > 0 {
			b = raw[0]
			rest = raw[1:]
		}

		childTrail := own.push(b&0x80 != 0)
		t.growSlotCtx(&rn.children[b&0x7F], rest, aux, &growCtx{}, childTrail)
	}

	for _, s := range bkt.slots() {
		if s.empty() {
			continue
		}

		switch s.tag() {
		case tagArray:
			arr := wrapArray(&t.cfg, s.addr())
			arr.forEach(&t.cfg, redistribute)
			t.releaseArray(arr)

		case tagPail:
			pl := wrapPail(s.addr())
			for _, ps := range pl.slots() {
				if ps.empty() {
					continue
				}
				arr := wrapArray(&t.cfg, ps.addr())
				arr.forEach(&t.cfg, redistribute)
				t.releaseArray(arr)
			}
			pl.release(&t.alloc)
		}
	}

	bkt.release(&t.alloc)
}
