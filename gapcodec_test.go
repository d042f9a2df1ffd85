package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGapCodecRoundTrip(t *testing.T) {
	composites := []uint32{1, 5, 300, 301, 1_000_000, 4_000_000_000}
	encoded := encodeGaps(composites)
	assert.Equal(t, len(encoded), encodedGapLen(composites))

	decoded := decodeGaps(encoded, len(composites))
	assert.Equal(t, composites, decoded)
}

func TestGapCodecEmpty(t *testing.T) {
	encoded := encodeGaps(nil)
	assert.Empty(t, encoded)
	decoded := decodeGaps(encoded, 0)
	assert.Empty(t, decoded)
}

func TestVarintLenMatchesAppendedLength(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 16384, 4_000_000_000} {
		assert.Len(t, appendVarint(nil, v), varintLen(v))
	}
}
