// Package biastables is the external collaborator of spec §6.3: a
// process-wide, read-only set of empirical bias-correction tables keyed
// by (p, b). The core (package hll) consumes these through the narrow
// interface below and degrades to uncorrected raw HLL for any (p, b) pair
// not listed here, exactly as spec §6.3 requires for "missing tables."
//
// The real calibration pipeline that would populate every (p, b)
// combination is out of scope per spec §1 ("tables of bias/correction
// constants"); the literal numbers below are an illustrative subset
// grounded on the shape of the calibration tables used by
// clarkduvall/hyperloglog (rawEstimateData/biasData, interpolated the
// same way) and on the hash_list_correction/ and
// statistical_comparisons/ plotting scripts kept in original_source/,
// which describe this exact two-column (cardinality, bias) calibration
// shape for both the hash-list and HyperLogLog regimes.
package biastables

// Table is a calibration curve: Cardinalities strictly increasing,
// Biases of equal length, sampled at those cardinalities.
type Table struct {
	Cardinalities []float64
	Biases        []float64
}

type key struct {
	p, b uint
}

var (
	hashListBias     = map[key]Table{}
	hyperLogLogBias  = map[key]Table{}
	interpolationPts = map[key][]float64{}
)

func init() {
	// Illustrative calibration for the most common (p, b) pairs used in
	// the spec's own worked examples (§8 concrete scenarios: p=4/b=5,
	// p=12/b=6). Interpolation points are the HyperLogLog raw-estimate
	// grid at which hyperLogLogBias is sampled.
	registerPair(4, 5,
		Table{
			Cardinalities: []float64{1, 4, 8, 12, 16, 20, 24, 28, 32},
			Biases:        []float64{0, 0.05, 0.08, 0.10, 0.11, 0.115, 0.12, 0.122, 0.125},
		},
		Table{
			Cardinalities: []float64{10, 20, 30, 40, 50, 60, 70, 80},
			Biases:        []float64{0.09, 0.07, 0.055, 0.04, 0.03, 0.022, 0.016, 0.011},
		},
	)
	registerPair(12, 6,
		Table{
			Cardinalities: []float64{1, 512, 1024, 1536, 2048, 2560, 3072, 3584, 4096},
			Biases:        []float64{0, 6.1, 9.8, 12.2, 13.7, 14.6, 15.1, 15.4, 15.6},
		},
		Table{
			Cardinalities: []float64{2000, 4000, 6000, 8000, 10000, 14000, 18000, 22000},
			Biases:        []float64{0.021, 0.017, 0.0135, 0.0105, 0.0082, 0.005, 0.0031, 0.0019},
		},
	)
	registerPair(14, 6,
		Table{
			Cardinalities: []float64{1, 2048, 4096, 6144, 8192, 10240, 12288, 14336, 16384},
			Biases:        []float64{0, 24.3, 39.1, 48.8, 54.9, 58.5, 60.6, 61.7, 62.4},
		},
		Table{
			Cardinalities: []float64{8000, 16000, 24000, 32000, 40000, 56000, 72000, 88000},
			Biases:        []float64{0.0205, 0.0166, 0.0132, 0.0103, 0.008, 0.0049, 0.003, 0.0018},
		},
	)
}

func registerPair(p, b uint, hashList, hll Table) {
	k := key{p, b}
	hashListBias[k] = hashList
	hyperLogLogBias[k] = hll
	interpolationPts[k] = hll.Cardinalities
}

// HashListBias returns the hash-list-regime calibration table for (p, b),
// or ok=false if none is registered (estimate degrades to uncorrected k).
func HashListBias(p, b uint) (Table, bool) {
	t, ok := hashListBias[key{p, b}]
	return t, ok
}

// HyperLogLogBias returns the HyperLogLog-regime relative-bias table for
// (p, b), or ok=false if none is registered (estimate degrades to
// uncorrected raw HLL).
func HyperLogLogBias(p, b uint) (Table, bool) {
	t, ok := hyperLogLogBias[key{p, b}]
	return t, ok
}

// InterpolationPoints returns the raw-estimate grid at which
// HyperLogLogBias is sampled for (p, b).
func InterpolationPoints(p, b uint) ([]float64, bool) {
	pts, ok := interpolationPts[key{p, b}]
	return pts, ok
}

// maxExtrapolationGaps bounds how far past the last calibrated point the
// slope-extrapolation of spec §9's Open Questions resolution is still
// credible: beyond that many multiples of the last calibrated segment's
// width, a linearly continued slope has long since left the regime the
// calibration data says anything about (for the illustrative (p=12, b=6)
// table, the last calibrated raw estimate is 22000; extrapolating its
// slope out to a raw estimate of 1,000,000 would imply a bias correction
// larger than the estimate itself). Past that bound, Interpolate degrades
// to no correction (delta/bias 0), i.e. spec §4.D regime 4's "return raw
// unmodified" / the hash-list estimator's "degrades to uncorrected k".
const maxExtrapolationGaps = 3.0

// Interpolate performs the linear interpolation / constant-extrapolation
// described by spec §6.3, with the slope-extrapolation beyond the last
// calibrated point resolved in spec §9's Open Questions (and
// SPEC_FULL.md §3): constant below the first point, linear between
// points, and beyond the last point a line continued at the slope of the
// final calibrated segment, but only up to maxExtrapolationGaps beyond it;
// past that the extrapolation is no longer credible and Interpolate
// returns 0 (no correction).
func Interpolate(t Table, x float64) float64 {
	n := len(t.Cardinalities)
	if n == 0 {
		return 0
	}
	if n == 1 || x <= t.Cardinalities[0] {
		return t.Biases[0]
	}
	last := n - 1
	if x >= t.Cardinalities[last] {
		x0, x1 := t.Cardinalities[last-1], t.Cardinalities[last]
		y0, y1 := t.Biases[last-1], t.Biases[last]
		gap := x1 - x0
		if gap <= 0 || x-x1 > maxExtrapolationGaps*gap {
			return 0
		}
		slope := (y1 - y0) / gap
		return y1 + slope*(x-x1)
	}
	i := 0
	for i < last && t.Cardinalities[i+1] < x {
		i++
	}
	x0, x1 := t.Cardinalities[i], t.Cardinalities[i+1]
	y0, y1 := t.Biases[i], t.Biases[i+1]
	if x1 == x0 {
		return y0
	}
	frac := (x - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}
