// Package ranking applies user-selected criterion filters and produces the
// total ordering over a scored batch.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Filters holds the user-selected criterion toggles. A filter that is off
// contributes nothing to the satisfied-filter count regardless of whether
// the criterion matched.
type Filters struct {
	Sector   bool
	Stage    bool
	Location bool
	Amount   bool
}

// ParseFilters validates a raw toggle map. Unknown keys are an integration
// mistake and are surfaced as an error rather than silently ignored; a nil
// or empty map means no filters are active.
func ParseFilters(raw map[string]bool) (Filters, error) {
	var f Filters
	for key, on := range raw {
		switch key {
		case "sector":
			f.Sector = on
		case "stage":
			f.Stage = on
		case "location":
			f.Location = on
		case "amount":
			f.Amount = on
		default:
			return Filters{}, fmt.Errorf("%w: %q", models.ErrUnknownFilter, key)
		}
	}
	return f, nil
}

// Rank computes each entry's satisfied-filter count from its breakdown, then
// sorts by count descending, score descending, and case-insensitive name
// ascending. Every input entry appears in the output exactly once; dropping
// or de-duplicating entries is the caller's decision, never the ranker's.
func Rank(entries []models.RankedEntry, filters Filters) []models.RankedEntry {
	ranked := make([]models.RankedEntry, len(entries))
	copy(ranked, entries)

	for i := range ranked {
		ranked[i].SatisfiedFilterCount = satisfiedCount(ranked[i].Result.Breakdown, filters)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.SatisfiedFilterCount != b.SatisfiedFilterCount {
			return a.SatisfiedFilterCount > b.SatisfiedFilterCount
		}
		if a.Result.Score != b.Result.Score {
			return a.Result.Score > b.Result.Score
		}
		an := strings.ToLower(a.Candidate.DisplayName)
		bn := strings.ToLower(b.Candidate.DisplayName)
		if an != bn {
			return an < bn
		}
		// equal-fold names fall back to a byte compare so the order is
		// never left unspecified
		return a.Candidate.DisplayName < b.Candidate.DisplayName
	})

	return ranked
}

// satisfiedCount counts user-enabled criteria whose breakdown contribution
// is positive.
func satisfiedCount(b models.Breakdown, f Filters) int {
	count := 0
	if f.Sector && b.Sector > 0 {
		count++
	}
	if f.Stage && b.Stage > 0 {
		count++
	}
	if f.Location && b.Location > 0 {
		count++
	}
	if f.Amount && b.Amount > 0 {
		count++
	}
	return count
}
