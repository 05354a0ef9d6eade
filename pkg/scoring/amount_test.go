package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountRange(t *testing.T) {
	tests := []struct {
		in   string
		min  float64
		max  float64
		ok   bool
	}{
		{"$1M", 1e6, 1e6, true},
		{"500k", 5e5, 5e5, true},
		{"1,000,000", 1e6, 1e6, true},
		{"$250K-$1M", 2.5e5, 1e6, true},
		{"$250K to $1M", 2.5e5, 1e6, true},
		{"1-2M", 1e6, 2e6, true},
		{"2B", 2e9, 2e9, true},
		{"$2M-$500K", 5e5, 2e6, true},
		{"", 0, 0, false},
		{"call us", 0, 0, false},
		{"N/A", 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAmountRange(tt.in)
		require.Equal(t, tt.ok, ok, "input %q", tt.in)
		if ok {
			assert.Equal(t, tt.min, got.Min, "input %q", tt.in)
			assert.Equal(t, tt.max, got.Max, "input %q", tt.in)
		}
	}
}

func TestAmountRange_Overlaps(t *testing.T) {
	a := AmountRange{Min: 1e5, Max: 1e6}

	assert.True(t, a.Overlaps(AmountRange{Min: 5e5, Max: 2e6}))
	assert.True(t, a.Overlaps(AmountRange{Min: 1e6, Max: 1e6}), "touching bounds overlap")
	assert.False(t, a.Overlaps(AmountRange{Min: 2e6, Max: 5e6}))
}

func TestAmountMatch(t *testing.T) {
	t.Run("OverlappingRanges", func(t *testing.T) {
		assert.Equal(t, 1.0, AmountMatch("$1M", "$500K-$2M"))
		assert.Equal(t, 1.0, AmountMatch("$250K to $1M", "1M"))
	})

	t.Run("DisjointWithinOneOrderOfMagnitude", func(t *testing.T) {
		assert.Equal(t, 0.5, AmountMatch("$1M", "$2M-$5M"))
		assert.Equal(t, 0.5, AmountMatch("$5M", "$1M"))
	})

	t.Run("DisjointBeyondOneOrderOfMagnitude", func(t *testing.T) {
		assert.Equal(t, 0.0, AmountMatch("$50K", "$10M"))
	})

	t.Run("UnparseableScoresZero", func(t *testing.T) {
		assert.Equal(t, 0.0, AmountMatch("flexible", "$1M"))
		assert.Equal(t, 0.0, AmountMatch("$1M", "varies"))
	})
}
