package hattrie

import "sort"

// Default tunables, mirroring the reference implementation's defaults.
const (
	DefaultBootLevels   = 3
	DefaultPailSlots    = 127
	DefaultBucketSlots  = 2047
	DefaultBucketMax    = 65536
	DefaultMaxKeyLength = 16383
)

// DefaultSizeClasses is the default Array capacity table, expressed in
// bytes. The reference implementation's header lists these out of order
// (24 appears after the first few smaller classes have already been
// emitted); this package sorts whatever table it is given at Open, so a
// caller-supplied table need not already be sorted.
var DefaultSizeClasses = []int{16, 32, 48, 64, 96, 128, 160, 192, 224, 256, 384, 512}

// Config captures every tunable accepted by Open. Unlike the reference
// implementation, which mutates a handful of process-wide globals from the
// command line before any trie is opened, a Config is a value captured once
// at construction time and stored on the Trie that owns it — two Tries in
// the same process may use different tunables safely.
//
// None of these fields affect correctness, only the memory/speed tradeoff;
// each field's comment below says what it controls.
type Config struct {
	// BootLevels is the number of cascaded top-level 128-way fanout levels
	// pre-materialized as a single flat array. 0 means the root is a
	// single Bucket slot.
	BootLevels int

	// PailSlots is the number of child slots in a Pail node. 0 disables
	// the Pail tier entirely: Arrays overflow straight into a Bucket burst.
	PailSlots int

	// BucketSlots is the number of child slots in a Bucket node.
	BucketSlots int

	// BucketMax is the live-key count at which a Bucket bursts into a Radix.
	BucketMax int

	// SizeClasses is the table of Array capacities, in bytes. Sorted
	// ascending at Open regardless of input order.
	SizeClasses []int

	// AuxWidth is the fixed width, in bytes, of the payload stored
	// alongside each key. Zero means the trie is used as a set: Cell and
	// Find return the Present sentinel rather than a payload address.
	AuxWidth int
}

// DefaultConfig returns the tunables used by the reference implementation
// unless overridden.
func DefaultConfig() Config {
	classes := make([]int, len(DefaultSizeClasses))
	copy(classes, DefaultSizeClasses)

	return Config{
		BootLevels:  DefaultBootLevels,
		PailSlots:   DefaultPailSlots,
		BucketSlots: DefaultBucketSlots,
		BucketMax:   DefaultBucketMax,
		SizeClasses: classes,
		AuxWidth:    0,
	}
}

// normalize validates and sorts the configuration in place, filling in
// BucketSlots, BucketMax and SizeClasses with their defaults when unset.
// Called once, from Open.
func (c *Config) normalize() {
	if c.BootLevels < 0 {
		panic("hattrie: BootLevels must be non-negative")
	}
	if c.PailSlots < 0 {
		panic("hattrie: PailSlots must be non-negative")
	}
	if c.BucketSlots <= 0 {
		c.BucketSlots = DefaultBucketSlots
	}
	if c.BucketMax <= 0 {
		c.BucketMax = DefaultBucketMax
	}
	if c.AuxWidth < 0 {
		panic("hattrie: AuxWidth must be non-negative")
	}
	if len(c.SizeClasses) == 0 {
		c.SizeClasses = append([]int(nil), DefaultSizeClasses...)
	}

	classes := append([]int(nil), c.SizeClasses...)
	sort.Ints(classes)
	c.SizeClasses = classes
}
