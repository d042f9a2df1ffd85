package hll

import "math/bits"

// candidateHashBits are the allowed widths for the hash-list's composite
// hash, per spec §3 ("hash_bits — the uniform-part width u ∈ {8,16,24,32}").
var candidateHashBits = [...]uint{8, 16, 24, 32}

// selectHashBits picks the smallest candidate width u with u >= p+b, per
// spec §3: "selected at construction as the smallest u ≥ p + b that
// admits a useful fill ratio." 32 always suffices since p<=18, b<=8.
func selectHashBits(p, b uint) uint {
	for _, u := range candidateHashBits {
		if u >= p+b {
			return u
		}
	}
	return candidateHashBits[len(candidateHashBits)-1]
}

// compositeLayout fixes the frozen composite-hash layout described in
// SPEC_FULL.md §3 "Composite hash layout (frozen)". hashBits is the total
// composite width; uniformBits is what remains after reserving p bits for
// the register index and b bits for the leading-zero count.
type compositeLayout struct {
	p, b        uint
	hashBits    uint
	uniformBits uint
}

func newCompositeLayout(p, b uint) compositeLayout {
	hashBits := selectHashBits(p, b)
	return compositeLayout{
		p:           p,
		b:           b,
		hashBits:    hashBits,
		uniformBits: hashBits - p - b,
	}
}

// compute derives the composite hash from a 64-bit hash, per spec §4.B:
//   index = top p bits of h
//   zeros = leading-zero run length of (h<<p), +1, clipped to 2^b-1
//   uniform = the next uniformBits bits of h after the index
//   composite = (index << (uniformBits+b)) | (uniform << b) | zeros
func (l compositeLayout) compute(h uint64) uint32 {
	index := h >> (64 - l.p)

	shifted := h << l.p
	zeros := uint64(bits.LeadingZeros64(shifted)) + 1
	if max := maxRegisterValue(l.b); zeros > max {
		zeros = max
	}

	var uniform uint64
	if l.uniformBits > 0 {
		uniform = shifted >> (64 - l.uniformBits)
	}

	composite := (index << (l.uniformBits + l.b)) | (uniform << l.b) | zeros
	return uint32(composite & ((uint64(1) << l.hashBits) - 1))
}

// decode extracts (index, zeros) from a composite hash, discarding the
// uniform bits; used during promotion to apply each composite directly to
// a register array.
func (l compositeLayout) decode(composite uint32) (index uint64, zeros uint64) {
	c := uint64(composite)
	zeros = c & maxRegisterValue(l.b)
	index = c >> (l.uniformBits + l.b)
	return index, zeros
}

// decomposeHash extracts (index, zeros) directly from a 64-bit hash, the
// Dense-variant equivalent of compositeLayout.compute+decode without the
// intermediate packed composite (spec §4.C: "If Dense, decode (index,
// zeros) from h and call A.set_max(index, zeros)").
func decomposeHash(h uint64, p, b uint) (index uint64, zeros uint64) {
	index = h >> (64 - p)
	shifted := h << p
	zeros = uint64(bits.LeadingZeros64(shifted)) + 1
	if max := maxRegisterValue(b); zeros > max {
		zeros = max
	}
	return index, zeros
}
