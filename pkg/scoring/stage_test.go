package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageMatch(t *testing.T) {
	t.Run("ExactMatch", func(t *testing.T) {
		assert.Equal(t, 1.0, StageMatch("Seed", "Seed"))
		assert.Equal(t, 1.0, StageMatch("seed", "SEED"))
		assert.Equal(t, 1.0, StageMatch("Series A", "series a"))
	})

	t.Run("AdjacentRung", func(t *testing.T) {
		assert.Equal(t, 0.5, StageMatch("Seed", "Pre-Seed"))
		assert.Equal(t, 0.5, StageMatch("Seed", "Series A"))
		assert.Equal(t, 0.5, StageMatch("Series B", "Series C"))
	})

	t.Run("TwoRungsApart", func(t *testing.T) {
		assert.Equal(t, 0.0, StageMatch("Seed", "Series B"))
		assert.Equal(t, 0.0, StageMatch("Pre-Seed", "Growth"))
	})

	t.Run("Synonyms", func(t *testing.T) {
		assert.Equal(t, 1.0, StageMatch("preseed", "Pre-Seed"))
		assert.Equal(t, 1.0, StageMatch("Growth", "expansion"))
	})

	t.Run("CompoundCandidateLabel", func(t *testing.T) {
		// best token wins
		assert.Equal(t, 1.0, StageMatch("Series A", "Pre-Seed/Series A"))
		assert.Equal(t, 0.5, StageMatch("Seed", "Series A, Series B"))
	})

	t.Run("UnknownLabels", func(t *testing.T) {
		assert.Equal(t, 0.0, StageMatch("Seed", "Buyout"))
		assert.Equal(t, 0.0, StageMatch("Mezzanine", "Seed"))
		// unknown but equal labels still match exactly
		assert.Equal(t, 1.0, StageMatch("Mezzanine", "Mezzanine"))
	})
}
