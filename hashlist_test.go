package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashListInsertDedup(t *testing.T) {
	hl := NewHashList(4, 5)

	_, inserted := hl.InsertHash(0xAAAAAAAAAAAAAAAA)
	assert.True(t, inserted)

	_, inserted = hl.InsertHash(0xAAAAAAAAAAAAAAAA)
	assert.False(t, inserted)
	assert.Equal(t, 1, hl.Len())
}

func TestHashListKeepsCompositesSorted(t *testing.T) {
	hl := NewHashList(4, 5)
	for _, h := range []uint64{5, 500, 1, 9999999, 42} {
		hl.InsertHash(h)
	}

	composites := hl.Composites()
	for i := 1; i < len(composites); i++ {
		assert.Less(t, composites[i-1], composites[i])
	}
}

func TestHashListSaturatesUnderSustainedInserts(t *testing.T) {
	hl := NewHashList(4, 5) // m=16, capacity_bits=80
	for i := uint64(0); i < 10000 && !hl.Saturated(); i++ {
		hl.InsertHash(i * 0x9E3779B97F4A7C15)
	}
	assert.True(t, hl.Saturated())
}

func TestWillSaturateOnInsertAgreesWithInsert(t *testing.T) {
	hl := NewHashList(4, 5)
	for i := uint64(0); i < 40 && !hl.Saturated(); i++ {
		h := i * 0x9E3779B97F4A7C15
		predicted := hl.WillSaturateOnInsert(hl.layout.compute(h))
		hl.InsertHash(h)
		if predicted {
			assert.True(t, hl.Saturated())
		}
	}
}

func TestMergeHashListsUnionsComposites(t *testing.T) {
	a := NewHashList(8, 5)
	b := NewHashList(8, 5)
	a.InsertHash(0x1111111111111111)
	a.InsertHash(0x2222222222222222)
	b.InsertHash(0x2222222222222222)
	b.InsertHash(0x3333333333333333)

	merged, ok := mergeHashLists(a, b)
	require.True(t, ok)
	assert.LessOrEqual(t, merged.Len(), 3)
	assert.GreaterOrEqual(t, merged.Len(), 2)
}

func TestHashListCloneIsIndependent(t *testing.T) {
	hl := NewHashList(4, 5)
	hl.InsertHash(1)
	clone := hl.Clone()
	clone.InsertHash(0x8000000000000000)
	assert.NotEqual(t, hl.Len(), clone.Len())
}
