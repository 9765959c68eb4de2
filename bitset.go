package terraskel

import "math/bits"

// bitset is a growable bit vector, the same []uint64-plus-math/bits
// shape used elsewhere in this domain for per-cell possibility
// domains. It backs the level index's hasSubdivedNeighbor /
// hasNonSubdivedNeighbor sets and the unsubdivision scratchpad's
// tryUnsubdiv / cantUnsubdiv / distanceTestDone sets.
type bitset struct {
	words []uint64
	n     int // number of addressable bits; resize preserves bits below this
}

// resize grows the bitset to hold at least n bits, preserving every
// existing bit. Shrinking is a no-op: capacity only ever grows, which
// is all the engine needs since triangle ids are never reused below
// the live capacity within a single pass.
func (b *bitset) resize(n int) {
	if n <= b.n {
		return
	}
	need := (n + 63) / 64
	if need > len(b.words) {
		grown := make([]uint64, need)
		copy(grown, b.words)
		b.words = grown
	}
	b.n = n
}

func (b *bitset) set(i int) {
	b.resize(i + 1)
	b.words[i/64] |= 1 << uint(i%64)
}

func (b *bitset) clear(i int) {
	if i >= b.n {
		return
	}
	b.words[i/64] &^= 1 << uint(i%64)
}

func (b *bitset) test(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

// setTo sets or clears bit i to match v.
func (b *bitset) setTo(i int, v bool) {
	if v {
		b.set(i)
	} else {
		b.clear(i)
	}
}

// resetAll clears every bit without shrinking capacity.
func (b *bitset) resetAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// ones appends the index of every set bit to dst and returns it, the
// way a caller walks a triangle domain bitset's possibilities.
func (b *bitset) ones(dst []int) []int {
	for w, word := range b.words {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			dst = append(dst, w*64+bit)
			word &^= 1 << uint(bit)
		}
	}
	return dst
}
