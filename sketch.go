package hll

import (
	"fmt"
	"log/slog"
)

// variant tags the hybrid sketch's representation, per spec §3: "Tagged
// variant { HashList(B), Dense(A) }. Ownership: exclusive; the variant
// transitions HashList -> Dense exactly once, never back."
type variant uint8

const (
	variantHashList variant = iota
	variantDense
)

// Sketch is component C: the hybrid sketch that owns either a HashList (B)
// or a register array (A), routing insert/merge/estimate and managing the
// one-way promotion between them. Grounded on the teacher's Hll struct
// (hll.go), which plays the identical role across its EXPLICIT/SPARSE/FULL
// states; this rewrite collapses that three-way state machine to the two
// states spec §3 defines.
type Sketch struct {
	p, b   uint
	hasher Hasher
	diag   diagnostics

	variant  variant
	hashList *HashList
	dense    *Registers
}

// New constructs an empty HashList-variant sketch for precision p and
// register width b, per spec §4.C's new(p, b). A nil hasher defaults to
// DefaultHasher(); a nil logger defaults to slog.Default().
func New(p, b uint, hasher Hasher, logger *slog.Logger) (*Sketch, error) {
	if err := validateParams(p, b); err != nil {
		return nil, err
	}
	if hasher == nil {
		hasher = DefaultHasher()
	}
	return &Sketch{
		p:        p,
		b:        b,
		hasher:   hasher,
		diag:     newDiagnostics(logger),
		variant:  variantHashList,
		hashList: NewHashList(p, b),
	}, nil
}

// Precision reports p.
func (s *Sketch) Precision() uint { return s.p }

// BitWidth reports b.
func (s *Sketch) BitWidth() uint { return s.b }

// IsEmpty reports whether the sketch has observed no elements: an
// unsaturated HashList with zero hashes, or a Dense array with every
// register at zero.
func (s *Sketch) IsEmpty() bool {
	if s.variant == variantHashList {
		return s.hashList.Len() == 0
	}
	return s.dense.CountZeros() == s.dense.Count()
}

// Insert hashes x and inserts it, per spec §4.C's insert(x).
func (s *Sketch) Insert(x []byte) {
	s.InsertHash(s.hasher.Hash(x))
}

// InsertHash routes a precomputed 64-bit hash: if HashList, attempt an
// insert and promote on saturation; if Dense, decode (index, zeros) and
// apply set_max directly. Per spec §4.C, once the HashList signals
// saturation it is promoted and the hash is already reflected (it was
// inserted into the HashList before the saturation check), so no
// re-application is needed.
func (s *Sketch) InsertHash(h uint64) {
	switch s.variant {
	case variantHashList:
		s.hashList.InsertHash(h)
		if s.hashList.Saturated() {
			s.promote()
		}
	case variantDense:
		index, zeros := decomposeHash(h, s.p, s.b)
		s.dense.SetMax(index, zeros)
	}
}

// promote replaces the HashList variant with an equivalent Dense array, per
// spec §4.C "Promotion (HashList -> Dense)". Irreversible.
func (s *Sketch) promote() {
	dense := NewRegisters(s.b, uint(1)<<s.p)
	for _, c := range s.hashList.Composites() {
		index, zeros := s.hashList.Decode(c)
		dense.SetMax(index, zeros)
	}
	s.dense = dense
	s.hashList = nil
	s.variant = variantDense
}

// denseFromHashList materializes a throwaway register array for a
// HashList's composites, without mutating the HashList's owning sketch.
// Used by merge and cardinality_of_union when one operand is still a
// HashList and the other forces a Dense comparison.
func denseFromHashList(hl *HashList, p, b uint) *Registers {
	regs := NewRegisters(b, uint(1)<<p)
	for _, c := range hl.Composites() {
		index, zeros := hl.Decode(c)
		regs.SetMax(index, zeros)
	}
	return regs
}

func (s *Sketch) checkCompatible(other *Sketch) error {
	if s.p != other.p || s.b != other.b {
		return fmt.Errorf("%w: (p=%d, b=%d) vs (p=%d, b=%d)", ErrIncompatibleMerge, s.p, s.b, other.p, other.b)
	}
	if s.hasher.name() != other.hasher.name() {
		return fmt.Errorf("%w: hasher %q vs %q", ErrIncompatibleMerge, s.hasher.name(), other.hasher.name())
	}
	return nil
}

// Merge combines other into s in place, per spec §4.C's four-case merge:
// HL∪HL (merged HL, promoting both on overflow), HL∪Dense and Dense∪HL
// (decode the HashList side onto a Dense array), and Dense∪Dense
// (register-wise max). Returns ErrIncompatibleMerge if (p, b) or the
// hasher identity differ.
func (s *Sketch) Merge(other *Sketch) error {
	if err := s.checkCompatible(other); err != nil {
		return err
	}

	switch {
	case s.variant == variantHashList && other.variant == variantHashList:
		if merged, ok := mergeHashLists(s.hashList, other.hashList); ok {
			s.hashList = merged
			return nil
		}
		s.promote()
		s.dense.Merge(denseFromHashList(other.hashList, s.p, s.b))

	case s.variant == variantHashList && other.variant == variantDense:
		s.promote()
		s.dense.Merge(other.dense)

	case s.variant == variantDense && other.variant == variantHashList:
		s.dense.Merge(denseFromHashList(other.hashList, s.p, s.b))

	default: // Dense, Dense
		s.dense.Merge(other.dense)
	}
	return nil
}

// Estimate delegates to component D, per spec §4.C's estimate() -> f64.
func (s *Sketch) Estimate() float64 {
	if s.variant == variantHashList {
		return estimateHashList(s.hashList, s.p, s.b, s.diag)
	}
	return estimateDense(s.dense, s.p, s.b, s.diag)
}

// EstimateMLE runs the optional maximum-likelihood refinement (spec
// §4.D) directly against this sketch's Dense registers. Returns
// ok=false for a HashList-variant sketch or on MLE non-convergence; the
// caller should fall back to Estimate() in either case.
func (s *Sketch) EstimateMLE() (float64, bool) {
	if s.variant != variantDense {
		return 0, false
	}
	return mleRefine(s.dense)
}

// CardinalityOfUnion computes the estimate of the union of s and other
// without mutating either, per spec §4.C's cardinality_of_union: a
// temporary merged view, estimated the same way Estimate() would estimate
// it directly (for Dense∪Dense this is the register-pair scan into D's
// harmonic sum, spec §4.C). Callers wanting the optional MLE-based union
// estimate (spec §4.D) should merge into a temporary Sketch themselves and
// call EstimateMLE.
func (s *Sketch) CardinalityOfUnion(other *Sketch) (float64, error) {
	if err := s.checkCompatible(other); err != nil {
		return 0, err
	}

	switch {
	case s.variant == variantHashList && other.variant == variantHashList:
		if merged, ok := mergeHashLists(s.hashList, other.hashList); ok {
			return estimateHashList(merged, s.p, s.b, s.diag), nil
		}
		tmp := denseFromHashList(s.hashList, s.p, s.b)
		tmp.Merge(denseFromHashList(other.hashList, s.p, s.b))
		return estimateDense(tmp, s.p, s.b, s.diag), nil

	case s.variant == variantHashList && other.variant == variantDense:
		tmp := denseFromHashList(s.hashList, s.p, s.b)
		tmp.Merge(other.dense)
		return estimateDense(tmp, s.p, s.b, s.diag), nil

	case s.variant == variantDense && other.variant == variantHashList:
		tmp := s.dense.Clone()
		tmp.Merge(denseFromHashList(other.hashList, s.p, s.b))
		return estimateDense(tmp, s.p, s.b, s.diag), nil

	default: // Dense, Dense
		tmp := s.dense.Clone()
		tmp.Merge(other.dense)
		return estimateDense(tmp, s.p, s.b, s.diag), nil
	}
}

// Clone returns a deep, independent copy.
func (s *Sketch) Clone() *Sketch {
	c := &Sketch{p: s.p, b: s.b, hasher: s.hasher, diag: s.diag, variant: s.variant}
	if s.variant == variantHashList {
		c.hashList = s.hashList.Clone()
	} else {
		c.dense = s.dense.Clone()
	}
	return c
}
