package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// AmountRange is a parsed monetary range. A single amount parses with
// Min == Max.
type AmountRange struct {
	Min float64
	Max float64
}

var rangeSeparator = regexp.MustCompile(`\s*(?:-|–|—|\bto\b)\s*`)
var amountPattern = regexp.MustCompile(`^\$?\s*([0-9]+(?:\.[0-9]+)?)\s*([kKmMbB])?$`)

// ParseAmountRange parses free-text amounts like "$1M", "500k-2M",
// "1,000,000", or "$250K to $1M". Unparseable input returns ok == false and
// contributes nothing to the score; it is never an error.
func ParseAmountRange(s string) (AmountRange, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return AmountRange{}, false
	}

	parts := rangeSeparator.Split(s, 2)
	low, lowSuffix, ok := parseAmount(parts[0])
	if !ok {
		return AmountRange{}, false
	}

	if len(parts) == 1 {
		return AmountRange{Min: low, Max: low}, true
	}

	high, highSuffix, ok := parseAmount(parts[1])
	if !ok {
		return AmountRange{}, false
	}

	// "1-2M" style ranges carry the suffix only on the upper bound
	if lowSuffix == "" && highSuffix != "" {
		low *= suffixMultiplier(highSuffix)
	}

	if high < low {
		low, high = high, low
	}
	return AmountRange{Min: low, Max: high}, true
}

func parseAmount(s string) (value float64, suffix string, ok bool) {
	m := amountPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	suffix = strings.ToLower(m[2])
	return v * suffixMultiplier(suffix), suffix, true
}

func suffixMultiplier(suffix string) float64 {
	switch strings.ToLower(suffix) {
	case "k":
		return 1e3
	case "m":
		return 1e6
	case "b":
		return 1e9
	default:
		return 1
	}
}

// Overlaps reports whether two ranges intersect.
func (r AmountRange) Overlaps(other AmountRange) bool {
	return r.Min <= other.Max && other.Min <= r.Max
}

// adjacentMagnitude reports whether two disjoint ranges sit within one order
// of magnitude of each other.
func adjacentMagnitude(a, b AmountRange) bool {
	var gapLow, gapHigh float64
	if a.Max < b.Min {
		gapLow, gapHigh = a.Max, b.Min
	} else {
		gapLow, gapHigh = b.Max, a.Min
	}
	if gapLow <= 0 {
		return false
	}
	return gapHigh/gapLow <= 10
}

// AmountMatch compares the profile's amount sought against the candidate's
// ticket size. Overlapping ranges score 1.0, disjoint ranges within one
// order of magnitude score 0.5, and anything unparseable scores 0.
func AmountMatch(profileAmount, candidateTicket string) float64 {
	want, ok := ParseAmountRange(profileAmount)
	if !ok {
		return 0
	}
	have, ok := ParseAmountRange(candidateTicket)
	if !ok {
		return 0
	}
	if want.Overlaps(have) {
		return 1.0
	}
	if adjacentMagnitude(want, have) {
		return 0.5
	}
	return 0
}
