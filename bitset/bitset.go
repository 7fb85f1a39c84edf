// Package bitset implements a fixed-capacity bit vector used throughout the
// simulation core for presence sets (entities alive, components present) and
// for the combined masks that entity joins iterate over. It is grounded on
// the BitSetVec used by the original board-ecs crate (entities.rs, join.rs):
// set/reset/test plus word-level and/or/not/andnot, word-by-word scanning
// for the first free index, and ascending-index iteration for determinism.
package bitset

import "math/bits"

const wordBits = 64

// Bitset is a fixed-capacity vector of bits backed by a []uint64. All
// operations are bit-exact and allocation-free once constructed, which is
// required for the determinism contract in spec §4.3: identical sequences
// of Set/Reset/And/Or produce identical bit patterns on every peer.
type Bitset struct {
	words []uint64
	n     int // capacity in bits
}

// New creates a Bitset with capacity for at least n bits.
func New(n int) *Bitset {
	if n < 0 {
		n = 0
	}
	return &Bitset{
		words: make([]uint64, (n+wordBits-1)/wordBits),
		n:     n,
	}
}

// Len returns the bit capacity of the set.
func (b *Bitset) Len() int { return b.n }

func wordIndex(i int) (word, bit int) {
	return i / wordBits, i % wordBits
}

// Set marks bit i as present.
func (b *Bitset) Set(i int) {
	w, bit := wordIndex(i)
	b.words[w] |= 1 << uint(bit)
}

// Reset clears bit i.
func (b *Bitset) Reset(i int) {
	w, bit := wordIndex(i)
	b.words[w] &^= 1 << uint(bit)
}

// Test reports whether bit i is set.
func (b *Bitset) Test(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	w, bit := wordIndex(i)
	return b.words[w]&(1<<uint(bit)) != 0
}

// Clear resets every bit.
func (b *Bitset) Clear() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	c := 0
	for _, w := range b.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Clone returns an independent deep copy, used to snapshot presence sets as
// part of a World clone (spec §3 "Cloneable").
func (b *Bitset) Clone() *Bitset {
	out := &Bitset{
		words: make([]uint64, len(b.words)),
		n:     b.n,
	}
	copy(out.words, b.words)
	return out
}

// CopyFrom overwrites the receiver's bits with src's, growing the backing
// array if necessary. Used by the ecs join helpers (With, Without, Or) to
// reuse one mask across repeated combines.
func (b *Bitset) CopyFrom(src *Bitset) {
	if cap(b.words) < len(src.words) {
		b.words = make([]uint64, len(src.words))
	} else {
		b.words = b.words[:len(src.words)]
	}
	copy(b.words, src.words)
	b.n = src.n
}

func sameShape(a, b *Bitset) {
	if len(a.words) != len(b.words) {
		panic("bitset: operands have different capacity")
	}
}

// And sets the receiver to the bitwise AND of a and c (a &= c equivalent
// when called as a.And(a, c), but this form takes explicit operands so
// callers can build a fresh combined mask without mutating either input).
func (b *Bitset) And(a, c *Bitset) {
	sameShape(a, c)
	b.ensure(a)
	for i := range a.words {
		b.words[i] = a.words[i] & c.words[i]
	}
}

// Or sets the receiver to the bitwise OR of a and c.
func (b *Bitset) Or(a, c *Bitset) {
	sameShape(a, c)
	b.ensure(a)
	for i := range a.words {
		b.words[i] = a.words[i] | c.words[i]
	}
}

// Not sets the receiver to the bitwise complement of a, masked to a's
// capacity so trailing bits beyond n never appear set.
func (b *Bitset) Not(a *Bitset) {
	b.ensure(a)
	for i := range a.words {
		b.words[i] = ^a.words[i]
	}
	b.maskTail()
}

// AndNot sets the receiver to a AND NOT c (a & ^c).
func (b *Bitset) AndNot(a, c *Bitset) {
	sameShape(a, c)
	b.ensure(a)
	for i := range a.words {
		b.words[i] = a.words[i] &^ c.words[i]
	}
}

func (b *Bitset) ensure(like *Bitset) {
	if len(b.words) != len(like.words) {
		b.words = make([]uint64, len(like.words))
		b.n = like.n
	}
}

func (b *Bitset) maskTail() {
	if b.n%wordBits == 0 {
		return
	}
	lastWord := len(b.words) - 1
	if lastWord < 0 {
		return
	}
	validBits := uint(b.n % wordBits)
	mask := uint64(1)<<validBits - 1
	b.words[lastWord] &= mask
}

// FirstClear returns the lowest index i < n with bit i clear, and false if
// every bit is set. Scanning is word-at-a-time, matching the allocation
// policy in spec §4.1: "scan the alive-bitset word by word for the first
// clear bit".
func (b *Bitset) FirstClear() (int, bool) {
	for wi, w := range b.words {
		if w == ^uint64(0) {
			continue
		}
		// TrailingZeros of the complement gives the first clear bit.
		bit := bits.TrailingZeros64(^w)
		idx := wi*wordBits + bit
		if idx >= b.n {
			return 0, false
		}
		return idx, true
	}
	return 0, false
}

// Range calls fn for every set bit in ascending order, stopping early if fn
// returns false. Ascending order is required for the iteration-order
// determinism guarantee (spec §4.1, §5 Ordering).
func (b *Bitset) Range(fn func(i int) bool) {
	for wi, w := range b.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			idx := wi*wordBits + bit
			if idx >= b.n {
				return
			}
			if !fn(idx) {
				return
			}
			w &= w - 1 // clear lowest set bit
		}
	}
}
