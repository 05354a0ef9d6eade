// Package scoring computes the 0-100 match score and per-criterion breakdown
// for one (profile, candidate) pair.
package scoring

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Scorer scores candidates against a client profile using a weight table.
// The same scorer serves investor and incubator candidates; only the alias
// tables that produced the candidate differ. Scoring is pure: no state, no
// ordering effects, identical inputs always produce identical output.
type Scorer struct {
	weights WeightTable
}

// NewScorer creates a scorer with the given weight table.
func NewScorer(weights WeightTable) *Scorer {
	return &Scorer{weights: weights}
}

// Score evaluates the four criteria independently. A criterion contributes
// zero when either side is empty or unresolved; absence is never penalized,
// only presence is rewarded.
func (s *Scorer) Score(profile models.ClientProfile, candidate models.ResolvedCandidate) models.MatchResult {
	breakdown := models.Breakdown{
		Sector:   s.sectorScore(profile, candidate),
		Stage:    s.stageScore(profile, candidate),
		Location: s.locationScore(profile, candidate),
		Amount:   s.amountScore(profile, candidate),
	}

	sum := breakdown.Sector + breakdown.Stage + breakdown.Location + breakdown.Amount
	score := 100 * sum / s.weights.Total()
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return models.MatchResult{Score: score, Breakdown: breakdown}
}

// sectorScore matches when the profile's sector appears case-insensitively
// inside, or equals, any of the candidate's focus sectors.
func (s *Scorer) sectorScore(profile models.ClientProfile, candidate models.ResolvedCandidate) float64 {
	if models.IsAbsent(profile.Sector) || len(candidate.FocusSectors) == 0 {
		return 0
	}
	want := strings.ToLower(strings.TrimSpace(profile.Sector))
	for _, sector := range candidate.FocusSectors {
		have := strings.ToLower(strings.TrimSpace(sector))
		if models.IsAbsent(have) {
			continue
		}
		if have == want || strings.Contains(have, want) {
			return s.weights.Sector
		}
	}
	return 0
}

func (s *Scorer) stageScore(profile models.ClientProfile, candidate models.ResolvedCandidate) float64 {
	if models.IsAbsent(profile.Stage) || models.IsAbsent(candidate.Stage) {
		return 0
	}
	return StageMatch(profile.Stage, candidate.Stage) * s.weights.Stage
}

// locationScore matches on token overlap: "Boston" overlaps "Boston, MA".
func (s *Scorer) locationScore(profile models.ClientProfile, candidate models.ResolvedCandidate) float64 {
	if models.IsAbsent(profile.Location) || models.IsAbsent(candidate.Location) {
		return 0
	}
	want := locationTokens(profile.Location)
	have := locationTokens(candidate.Location)
	for tok := range want {
		if have[tok] {
			return s.weights.Location
		}
	}
	return 0
}

func (s *Scorer) amountScore(profile models.ClientProfile, candidate models.ResolvedCandidate) float64 {
	if models.IsAbsent(profile.FundingAmount) || models.IsAbsent(candidate.TicketSize) {
		return 0
	}
	return AmountMatch(profile.FundingAmount, candidate.TicketSize) * s.weights.Amount
}

// locationTokens lower-cases and splits a location on commas and whitespace,
// dropping single-character fragments.
func locationTokens(s string) map[string]bool {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if len(tok) > 1 {
			out[tok] = true
		}
	}
	return out
}
