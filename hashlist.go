package hll

import "sort"

// worstCaseGapBytes bounds the per-composite cost used for the cheap
// n_hashes saturation check (spec §4.B: "the duplicate-collision cutoff");
// a 32-bit composite never needs more than 5 LEB128 bytes.
const worstCaseGapBytes = 5

// HashList is component B: an ordered, duplicate-free sequence of
// composite hashes, used while the sketch's cardinality is small enough
// that storing hashes exactly is cheaper than the dense register array.
//
// The logical state is the sorted []uint32 of composites (SPEC_FULL.md §3
// resolves the internal representation this way); capacityBits is fixed at
// m*b on construction, and saturated is derived from the composite slice
// against capacityBits and the gap-encoded byte layout's size.
type HashList struct {
	layout      compositeLayout
	composites  []uint32
	capacityBits uint
	saturated   bool
}

// NewHashList creates an empty hash-list sized for precision p and
// register width b: capacity_bits = m*b, so the hash-list never exceeds
// the dense array's own footprint.
func NewHashList(p, b uint) *HashList {
	m := uint(1) << p
	return &HashList{
		layout:       newCompositeLayout(p, b),
		capacityBits: m * b,
	}
}

// HashBits reports the composite width u.
func (hl *HashList) HashBits() uint { return hl.layout.hashBits }

// Len reports n_hashes, the number of distinct composites stored.
func (hl *HashList) Len() int { return len(hl.composites) }

// Saturated reports the latch bit: once true, the hash-list no longer
// accepts inserts and the owner (component C) must promote.
func (hl *HashList) Saturated() bool { return hl.saturated }

// Composites exposes the sorted composite slice read-only (callers must
// not mutate the returned slice); used by promotion and by serialization.
func (hl *HashList) Composites() []uint32 { return hl.composites }

func (hl *HashList) maxHashes() int {
	return int(hl.capacityBits / (worstCaseGapBytes * 8))
}

// recomputeSaturation updates the saturated latch from the current
// composite slice, per spec §4.B's two saturation triggers: the bit
// budget is exhausted, or n_hashes reaches the precomputed worst-case max.
func (hl *HashList) recomputeSaturation() {
	if hl.saturated {
		return
	}
	if len(hl.composites) >= hl.maxHashes() {
		hl.saturated = true
		return
	}
	if encodedGapLen(hl.composites)*8 > int(hl.capacityBits) {
		hl.saturated = true
	}
}

// WillSaturateOnInsert reports whether inserting composite would trip the
// saturation latch, without mutating the hash-list.
func (hl *HashList) WillSaturateOnInsert(composite uint32) bool {
	if hl.saturated {
		return true
	}
	idx := sort.Search(len(hl.composites), func(i int) bool { return hl.composites[i] >= composite })
	if idx < len(hl.composites) && hl.composites[idx] == composite {
		return false
	}
	if len(hl.composites)+1 >= hl.maxHashes() {
		return true
	}
	hypothetical := make([]uint32, 0, len(hl.composites)+1)
	hypothetical = append(hypothetical, hl.composites[:idx]...)
	hypothetical = append(hypothetical, composite)
	hypothetical = append(hypothetical, hl.composites[idx:]...)
	return encodedGapLen(hypothetical)*8 > int(hl.capacityBits)
}

// InsertHash computes the composite for h and inserts it. Returns
// (composite, inserted) where inserted is false if the composite was
// already present. After InsertHash, the caller must check Saturated()
// and promote if true.
func (hl *HashList) InsertHash(h uint64) (composite uint32, inserted bool) {
	composite = hl.layout.compute(h)
	inserted = hl.insertComposite(composite)
	return composite, inserted
}

func (hl *HashList) insertComposite(composite uint32) bool {
	idx := sort.Search(len(hl.composites), func(i int) bool { return hl.composites[i] >= composite })
	if idx < len(hl.composites) && hl.composites[idx] == composite {
		return false
	}
	hl.composites = append(hl.composites, 0)
	copy(hl.composites[idx+1:], hl.composites[idx:])
	hl.composites[idx] = composite
	hl.recomputeSaturation()
	return true
}

// Decode extracts (index, zeros) from composite for promotion.
func (hl *HashList) Decode(composite uint32) (index uint64, zeros uint64) {
	return hl.layout.decode(composite)
}

// Clone returns a deep copy.
func (hl *HashList) Clone() *HashList {
	c := &HashList{
		layout:       hl.layout,
		capacityBits: hl.capacityBits,
		saturated:    hl.saturated,
	}
	c.composites = make([]uint32, len(hl.composites))
	copy(c.composites, hl.composites)
	return c
}

// mergeHashLists linearly merges two hash-lists' composite sets, per spec
// §4.B "Merge of two hash-lists". Returns ok=false ("promotion required")
// if the merged set would not fit within capacity, in which case the
// caller must promote both operands to Dense and merge there instead.
func mergeHashLists(a, b *HashList) (*HashList, bool) {
	merged := make([]uint32, 0, len(a.composites)+len(b.composites))
	i, j := 0, 0
	for i < len(a.composites) && j < len(b.composites) {
		switch {
		case a.composites[i] < b.composites[j]:
			merged = append(merged, a.composites[i])
			i++
		case a.composites[i] > b.composites[j]:
			merged = append(merged, b.composites[j])
			j++
		default:
			merged = append(merged, a.composites[i])
			i++
			j++
		}
	}
	merged = append(merged, a.composites[i:]...)
	merged = append(merged, b.composites[j:]...)

	out := &HashList{
		layout:       a.layout,
		capacityBits: a.capacityBits,
		composites:   merged,
	}
	if len(merged) >= out.maxHashes() || encodedGapLen(merged)*8 > int(out.capacityBits) {
		return nil, false
	}
	return out, true
}
