package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistersSetMaxMonotone(t *testing.T) {
	r := NewRegisters(5, 16)

	changed := r.SetMax(3, 10)
	assert.True(t, changed)
	assert.EqualValues(t, 10, r.Get(3))

	changed = r.SetMax(3, 4)
	assert.False(t, changed)
	assert.EqualValues(t, 10, r.Get(3))

	changed = r.SetMax(3, 20)
	assert.True(t, changed)
	assert.EqualValues(t, 20, r.Get(3))
}

func TestRegistersStraddlingWidths(t *testing.T) {
	for _, width := range SupportedBitWidths {
		r := NewRegisters(width, 64)
		max := maxRegisterValue(width)
		for i := uint64(0); i < 64; i++ {
			v := (i * 7) % (max + 1)
			r.SetMax(i, v)
		}
		for i := uint64(0); i < 64; i++ {
			want := (i * 7) % (max + 1)
			require.EqualValuesf(t, want, r.Get(i), "width=%d index=%d", width, i)
		}
	}
}

func TestRegistersCountZerosAndHarmonicSum(t *testing.T) {
	r := NewRegisters(5, 8)
	assert.EqualValues(t, 8, r.CountZeros())
	assert.InDelta(t, 8.0, r.HarmonicSum(), 1e-9)

	r.SetMax(0, 1)
	assert.EqualValues(t, 7, r.CountZeros())
	assert.InDelta(t, 7+0.5, r.HarmonicSum(), 1e-9)
}

func TestRegistersMultiplicities(t *testing.T) {
	r := NewRegisters(4, 4)
	r.SetMax(0, 3)
	r.SetMax(1, 3)
	c := r.Multiplicities()
	assert.EqualValues(t, 2, c[3])
	assert.EqualValues(t, 2, c[0])
	assert.Len(t, c, int(maxRegisterValue(4))+1)
}

func TestRegistersCloneAndMergeDoesNotMutateOperands(t *testing.T) {
	a := NewRegisters(6, 4)
	b := NewRegisters(6, 4)
	a.SetMax(0, 10)
	b.SetMax(0, 5)
	b.SetMax(1, 20)

	clone := a.Clone()
	clone.Merge(b)

	assert.EqualValues(t, 10, clone.Get(0))
	assert.EqualValues(t, 20, clone.Get(1))
	assert.EqualValues(t, 0, a.Get(1))
	assert.EqualValues(t, 5, b.Get(0))
}

func TestRegistersIterStopsEarly(t *testing.T) {
	r := NewRegisters(4, 10)
	r.SetMax(0, 1)
	r.SetMax(1, 2)
	r.SetMax(2, 3)

	var visited []uint64
	r.Iter(func(index uint64, value uint64) bool {
		visited = append(visited, index)
		return index < 1
	})
	assert.Equal(t, []uint64{0, 1}, visited)
}
