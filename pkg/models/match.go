package models

import (
	"fmt"
	"math"
)

// Breakdown is the per-criterion decomposition of a match score. Each entry
// is the non-negative weighted contribution of that criterion; a value above
// zero means "criterion matched" to the ranker and the presentation layer.
type Breakdown struct {
	Sector   float64 `json:"sector"`
	Stage    float64 `json:"stage"`
	Location float64 `json:"location"`
	Amount   float64 `json:"amount"`
}

// MatchResult is the scorer's output for one (profile, candidate) pair.
// Score stays a float until presentation; rounding before the sort would
// discard tie-break information.
type MatchResult struct {
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// RoundedScore returns the presentation score, rounded to the nearest
// integer and clamped to [0, 100].
func (r MatchResult) RoundedScore() int {
	s := math.Round(r.Score)
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return int(s)
}

// RankedEntry is the unit the ranker sorts: a resolved candidate, its match
// result, and the count of user-enabled criteria it satisfied.
type RankedEntry struct {
	Candidate            ResolvedCandidate `json:"candidate"`
	Result               MatchResult       `json:"result"`
	SatisfiedFilterCount int               `json:"satisfied_filter_count"`
}

// RankedEntryView is the display shape returned over HTTP and Kafka: rounded
// score, full breakdown, and a focus summary limited to the first two sectors
// plus an overflow count.
type RankedEntryView struct {
	DisplayName          string    `json:"display_name"`
	PartnerName          string    `json:"partner_name"`
	Email                string    `json:"email"`
	FocusSectors         []string  `json:"focus_sectors"`
	FocusDisplay         string    `json:"focus_display"`
	Stage                string    `json:"stage"`
	Location             string    `json:"location"`
	TicketSize           string    `json:"ticket_size"`
	Score                int       `json:"score"`
	Breakdown            Breakdown `json:"breakdown"`
	SatisfiedFilterCount int       `json:"satisfied_filter_count"`
}

// NewRankedEntryView converts a ranked entry into its display shape.
func NewRankedEntryView(e RankedEntry) RankedEntryView {
	return RankedEntryView{
		DisplayName:          e.Candidate.DisplayName,
		PartnerName:          e.Candidate.PartnerName,
		Email:                e.Candidate.Email,
		FocusSectors:         e.Candidate.FocusSectors,
		FocusDisplay:         FocusDisplay(e.Candidate.FocusSectors),
		Stage:                e.Candidate.Stage,
		Location:             e.Candidate.Location,
		TicketSize:           e.Candidate.TicketSize,
		Score:                e.Result.RoundedScore(),
		Breakdown:            e.Result.Breakdown,
		SatisfiedFilterCount: e.SatisfiedFilterCount,
	}
}

// NewRankedEntryViews converts a ranked batch, preserving order and count.
func NewRankedEntryViews(entries []RankedEntry) []RankedEntryView {
	views := make([]RankedEntryView, len(entries))
	for i, e := range entries {
		views[i] = NewRankedEntryView(e)
	}
	return views
}

// FocusDisplay renders a sector list as the first two labels plus an
// overflow count, or the unresolved sentinel when there are none.
func FocusDisplay(sectors []string) string {
	switch len(sectors) {
	case 0:
		return Unresolved
	case 1:
		return sectors[0]
	case 2:
		return sectors[0] + ", " + sectors[1]
	default:
		return fmt.Sprintf("%s, %s +%d", sectors[0], sectors[1], len(sectors)-2)
	}
}
