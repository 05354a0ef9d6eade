package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func entry(name string, score float64, breakdown models.Breakdown) models.RankedEntry {
	return models.RankedEntry{
		Candidate: models.ResolvedCandidate{DisplayName: name},
		Result:    models.MatchResult{Score: score, Breakdown: breakdown},
	}
}

func TestParseFilters(t *testing.T) {
	t.Run("KnownKeys", func(t *testing.T) {
		f, err := ParseFilters(map[string]bool{"sector": true, "stage": false, "location": true, "amount": true})
		require.NoError(t, err)
		assert.Equal(t, Filters{Sector: true, Location: true, Amount: true}, f)
	})

	t.Run("NilMap", func(t *testing.T) {
		f, err := ParseFilters(nil)
		require.NoError(t, err)
		assert.Equal(t, Filters{}, f)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := ParseFilters(map[string]bool{"sector": true, "vibes": true})
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrUnknownFilter)
	})
}

func TestRank_EmptyInput(t *testing.T) {
	ranked := Rank([]models.RankedEntry{}, Filters{Sector: true})
	require.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRank_NameTieBreak(t *testing.T) {
	entries := []models.RankedEntry{
		entry("Zeta Capital", 80, models.Breakdown{Sector: 35}),
		entry("Acme Capital", 80, models.Breakdown{Sector: 35}),
	}

	ranked := Rank(entries, Filters{})
	assert.Equal(t, "Acme Capital", ranked[0].Candidate.DisplayName)
	assert.Equal(t, "Zeta Capital", ranked[1].Candidate.DisplayName)
}

func TestRank_InactiveFiltersIgnored(t *testing.T) {
	// both candidates match sector and stage, but only the sector filter is
	// active, so both count exactly 1 and score breaks the tie
	entries := []models.RankedEntry{
		entry("Low", 60, models.Breakdown{Sector: 35, Stage: 15}),
		entry("High", 90, models.Breakdown{Sector: 35, Stage: 30}),
	}

	ranked := Rank(entries, Filters{Sector: true})
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].SatisfiedFilterCount)
	assert.Equal(t, 1, ranked[1].SatisfiedFilterCount)
	assert.Equal(t, "High", ranked[0].Candidate.DisplayName)
}

func TestRank_CountBeatsScore(t *testing.T) {
	entries := []models.RankedEntry{
		entry("HighScoreOneMatch", 90, models.Breakdown{Sector: 35}),
		entry("LowScoreTwoMatches", 50, models.Breakdown{Sector: 20, Stage: 10}),
	}

	ranked := Rank(entries, Filters{Sector: true, Stage: true})
	assert.Equal(t, "LowScoreTwoMatches", ranked[0].Candidate.DisplayName)
	assert.Equal(t, 2, ranked[0].SatisfiedFilterCount)
	assert.Equal(t, 1, ranked[1].SatisfiedFilterCount)
}

func TestRank_NoFiltersFallsThroughToScore(t *testing.T) {
	entries := []models.RankedEntry{
		entry("Second", 70, models.Breakdown{Sector: 35, Stage: 30}),
		entry("First", 95, models.Breakdown{Sector: 35}),
	}

	ranked := Rank(entries, Filters{})
	assert.Equal(t, "First", ranked[0].Candidate.DisplayName)
	assert.Zero(t, ranked[0].SatisfiedFilterCount)
	assert.Zero(t, ranked[1].SatisfiedFilterCount)
}

func TestRank_FiltersNeverDropEntries(t *testing.T) {
	entries := []models.RankedEntry{
		entry("Matches", 80, models.Breakdown{Sector: 35}),
		entry("DoesNot", 10, models.Breakdown{}),
		entry("AlsoNot", 0, models.Breakdown{}),
	}

	ranked := Rank(entries, Filters{Sector: true, Stage: true, Location: true, Amount: true})
	assert.Len(t, ranked, len(entries))
}

func TestRank_CaseInsensitiveNameOrdering(t *testing.T) {
	entries := []models.RankedEntry{
		entry("beta fund", 50, models.Breakdown{}),
		entry("Alpha Fund", 50, models.Breakdown{}),
		entry("ALPHA FUND", 50, models.Breakdown{}),
	}

	ranked := Rank(entries, Filters{})
	// case-insensitive comparison groups the alphas first; the byte
	// comparison then orders uppercase before lowercase
	assert.Equal(t, "ALPHA FUND", ranked[0].Candidate.DisplayName)
	assert.Equal(t, "Alpha Fund", ranked[1].Candidate.DisplayName)
	assert.Equal(t, "beta fund", ranked[2].Candidate.DisplayName)
}

func TestRank_InputUntouched(t *testing.T) {
	entries := []models.RankedEntry{
		entry("B", 10, models.Breakdown{}),
		entry("A", 90, models.Breakdown{}),
	}

	_ = Rank(entries, Filters{})
	assert.Equal(t, "B", entries[0].Candidate.DisplayName, "caller's slice must keep its order")
}

func TestRank_Deterministic(t *testing.T) {
	entries := []models.RankedEntry{
		entry("Gamma", 70, models.Breakdown{Sector: 35, Location: 20}),
		entry("Alpha", 70, models.Breakdown{Stage: 30, Amount: 15}),
		entry("Beta", 70, models.Breakdown{Sector: 35, Stage: 30}),
	}
	filters := Filters{Sector: true, Stage: true}

	first := Rank(entries, filters)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Rank(entries, filters))
	}
}
