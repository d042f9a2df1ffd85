package hll

// Component E: pairwise overlap/difference cardinality matrices over two
// ordered, nested chains of sketches, via inclusion-exclusion over the
// chains' cumulative unions. Grounded on
// original_source/tests/test_hyper_spheres_sketch.py, which exercises
// exactly this overlap/difference/self-consistency contract against a
// HashSet reference implementation (spec §8 concrete scenarios 5 and 6).

// monotoneTolerance absorbs estimator noise when checking the nesting
// precondition (spec §4.E: "this monotonicity is a precondition; if
// violated, the component reports a diagnostic but continues").
const monotoneTolerance = 1e-6

// HyperSpheres holds the result of OverlapAndDifferenceMatrices: Overlap
// is ℓ×r, LeftDiff has length ℓ, RightDiff has length r.
type HyperSpheres struct {
	Overlap    [][]float64
	LeftDiff   []float64
	RightDiff  []float64
}

// OverlapAndDifferenceMatrices computes the triple described in spec
// §4.E for two nested chains left = L[0..ℓ] and right = R[0..r]. Returns
// ErrIncompatibleMerge if any pair of sketches across the chains has
// differing (p, b) or hasher identity.
func OverlapAndDifferenceMatrices(left, right []*Sketch, diag diagnostics) (*HyperSpheres, error) {
	l, r := len(left), len(right)

	cardL := make([]float64, l)
	for i, s := range left {
		cardL[i] = s.Estimate()
		if i > 0 && cardL[i] < cardL[i-1]-monotoneTolerance {
			diag.preconditionViolation("left hyper-sphere chain is not monotonically nested", "index", i, "previous", cardL[i-1], "current", cardL[i])
		}
	}
	cardR := make([]float64, r)
	for j, s := range right {
		cardR[j] = s.Estimate()
		if j > 0 && cardR[j] < cardR[j-1]-monotoneTolerance {
			diag.preconditionViolation("right hyper-sphere chain is not monotonically nested", "index", j, "previous", cardR[j-1], "current", cardR[j])
		}
	}

	// I[i][j] = |L[i] ∩ R[j]|, with an extra leading row/column of zeros
	// standing in for L[-1] = R[-1] = ∅, so the inclusion-exclusion
	// difference below never needs to special-case the first row/column.
	intersection := make([][]float64, l+1)
	for i := range intersection {
		intersection[i] = make([]float64, r+1)
	}
	for i := 0; i < l; i++ {
		for j := 0; j < r; j++ {
			union, err := left[i].CardinalityOfUnion(right[j])
			if err != nil {
				return nil, err
			}
			inter := cardL[i] + cardR[j] - union
			if inter < 0 {
				inter = 0
			}
			intersection[i+1][j+1] = inter
		}
	}

	overlap := make([][]float64, l)
	for i := 0; i < l; i++ {
		overlap[i] = make([]float64, r)
		for j := 0; j < r; j++ {
			v := intersection[i+1][j+1] - intersection[i][j+1] - intersection[i+1][j] + intersection[i][j]
			if v < 0 {
				v = 0
			}
			overlap[i][j] = v
		}
	}

	leftDiff := make([]float64, l)
	prevL := 0.0
	for i := 0; i < l; i++ {
		increment := cardL[i] - prevL
		prevL = cardL[i]
		var overlapSum float64
		for j := 0; j < r; j++ {
			overlapSum += overlap[i][j]
		}
		v := increment - overlapSum
		if v < 0 {
			v = 0
		}
		leftDiff[i] = v
	}

	rightDiff := make([]float64, r)
	prevR := 0.0
	for j := 0; j < r; j++ {
		increment := cardR[j] - prevR
		prevR = cardR[j]
		var overlapSum float64
		for i := 0; i < l; i++ {
			overlapSum += overlap[i][j]
		}
		v := increment - overlapSum
		if v < 0 {
			v = 0
		}
		rightDiff[j] = v
	}

	return &HyperSpheres{Overlap: overlap, LeftDiff: leftDiff, RightDiff: rightDiff}, nil
}

// Normalize divides Overlap by the union cardinality of the chains' last
// members and each diff vector by its own chain's last cardinality,
// clamping results to [0, 1], per spec §4.E's "Normalized variant".
func (hs *HyperSpheres) Normalize(left, right []*Sketch) (*HyperSpheres, error) {
	l, r := len(hs.Overlap), len(hs.RightDiff)
	out := &HyperSpheres{
		Overlap:   make([][]float64, l),
		LeftDiff:  make([]float64, l),
		RightDiff: make([]float64, r),
	}
	if l == 0 || r == 0 {
		return out, nil
	}

	total, err := left[l-1].CardinalityOfUnion(right[r-1])
	if err != nil {
		return nil, err
	}
	leftTotal := left[l-1].Estimate()
	rightTotal := right[r-1].Estimate()

	clamp01 := func(v float64) float64 {
		switch {
		case v < 0:
			return 0
		case v > 1:
			return 1
		default:
			return v
		}
	}

	for i := 0; i < l; i++ {
		out.Overlap[i] = make([]float64, r)
		for j := 0; j < r; j++ {
			if total <= 0 {
				continue
			}
			out.Overlap[i][j] = clamp01(hs.Overlap[i][j] / total)
		}
	}
	for i := 0; i < l; i++ {
		if leftTotal > 0 {
			out.LeftDiff[i] = clamp01(hs.LeftDiff[i] / leftTotal)
		}
	}
	for j := 0; j < r; j++ {
		if rightTotal > 0 {
			out.RightDiff[j] = clamp01(hs.RightDiff[j] / rightTotal)
		}
	}
	return out, nil
}
