package hll

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlphaKnownConstants(t *testing.T) {
	assert.InDelta(t, 0.673, alpha(16), 1e-9)
	assert.InDelta(t, 0.697, alpha(32), 1e-9)
	assert.InDelta(t, 0.709, alpha(64), 1e-9)
	assert.InDelta(t, 0.7213/(1+1.079/128), alpha(128), 1e-9)
}

func TestEstimateDenseAllZeroIsZero(t *testing.T) {
	regs := NewRegisters(5, 16)
	got := estimateDense(regs, 4, 5, newDiagnostics(nil))
	assert.Equal(t, 0.0, got)
}

// TestEstimateDenseSingleNonZeroMatchesLinearCounting exercises the spec's
// boundary scenario: a single non-zero register of any value still lands
// in the small-range linear-counting regime and the estimate does not
// depend on which value that register holds.
func TestEstimateDenseSingleNonZeroMatchesLinearCounting(t *testing.T) {
	m := 16.0
	want := m * math.Log(m/(m-1))

	for _, v := range []uint64{1, 2, 10} {
		regs := NewRegisters(5, 16)
		regs.SetMax(0, v)
		got := estimateDense(regs, 4, 5, newDiagnostics(nil))
		assert.InDelta(t, want, got, 1e-9)
	}
}

func TestEstimateHashListDegradesToExactCountWithoutTable(t *testing.T) {
	hl := NewHashList(7, 6) // no calibration table registered for (7, 6)
	hl.InsertHash(0x1111111111111111)
	hl.InsertHash(0x2222222222222222)
	hl.InsertHash(0x3333333333333333)

	got := estimateHashList(hl, 7, 6, newDiagnostics(nil))
	assert.Equal(t, 3.0, got)
}

func TestClampEstimateRecoversNonFiniteValues(t *testing.T) {
	diag := newDiagnostics(nil)
	assert.Equal(t, 0.0, clampEstimate(math.NaN(), diag, "test"))
	assert.Equal(t, 0.0, clampEstimate(math.Inf(1), diag, "test"))
	assert.Equal(t, 0.0, clampEstimate(-5, diag, "test"))
	assert.Equal(t, 3.5, clampEstimate(3.5, diag, "test"))
}

func TestMLERefineNeverPanicsAndReturnsNonNegative(t *testing.T) {
	regs := NewRegisters(6, 1024)
	for i := uint64(0); i < 1024; i++ {
		regs.SetMax(i, (i%5)+1)
	}
	lambda, ok := mleRefine(regs)
	if ok {
		assert.GreaterOrEqual(t, lambda, 0.0)
	}
}
