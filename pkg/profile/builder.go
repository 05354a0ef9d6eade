// Package profile builds the canonical client profile from a first-party
// client record.
package profile

import (
	"sort"
	"strings"

	"github.com/Ramsey-B/fern/pkg/extractor"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Client records are first-party, so each field gets a fixed two-alias
// lookup and no content heuristics. A miss is "" and scores zero.
var profileAliases = map[string][]string{
	"sector":   {"industry", "sector"},
	"stage":    {"fund_stage", "stage"},
	"location": {"location", "city"},
	"amount":   {"investment_ask", "funding_amount"},
}

// BuildProfile converts a client record into a ClientProfile. The lookup is
// case-insensitive over the record's keys; nested objects and arrays coerce
// the same way candidate resolution coerces them.
func BuildProfile(clientRecord models.RawRecord) models.ClientProfile {
	idx := indexKeys(clientRecord)
	return models.ClientProfile{
		Sector:        lookup(idx, profileAliases["sector"]),
		Stage:         lookup(idx, profileAliases["stage"]),
		Location:      lookup(idx, profileAliases["location"]),
		FundingAmount: lookup(idx, profileAliases["amount"]),
	}
}

func indexKeys(record models.RawRecord) map[string]any {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := make(map[string]any, len(record))
	for _, k := range keys {
		lower := strings.ToLower(k)
		if _, exists := idx[lower]; !exists {
			idx[lower] = record[k]
		}
	}
	return idx
}

func lookup(idx map[string]any, aliases []string) string {
	for _, alias := range aliases {
		v, ok := idx[alias]
		if !ok || extractor.IsBlank(v) {
			continue
		}
		return strings.TrimSpace(extractor.Stringify(v))
	}
	return ""
}
