package scoring

import "strings"

// stageLadder orders funding stages so adjacency can be scored. A candidate
// one rung away from the profile's stage earns a partial match.
var stageLadder = []string{
	"pre-seed",
	"seed",
	"series a",
	"series b",
	"series c",
	"growth",
	"late stage",
	"pre-ipo",
	"ipo",
}

// stageSynonyms maps spelling variants onto ladder labels.
var stageSynonyms = map[string]string{
	"preseed":    "pre-seed",
	"pre seed":   "pre-seed",
	"early":      "seed",
	"a":          "series a",
	"b":          "series b",
	"c":          "series c",
	"late":       "late stage",
	"pre ipo":    "pre-ipo",
	"preipo":     "pre-ipo",
	"expansion":  "growth",
	"late-stage": "late stage",
}

func stageIndex(label string) int {
	label = strings.TrimSpace(strings.ToLower(label))
	if canonical, ok := stageSynonyms[label]; ok {
		label = canonical
	}
	for i, rung := range stageLadder {
		if rung == label {
			return i
		}
	}
	return -1
}

// StageMatch compares a profile stage against a candidate stage label and
// returns 1.0 for an exact match, 0.5 for an adjacent rung, and 0 otherwise.
// Candidate labels may be compound ("Pre-Seed/Series A"); each token is
// compared independently and the best token wins.
func StageMatch(profileStage, candidateStage string) float64 {
	p := stageIndex(profileStage)

	best := 0.0
	for _, token := range splitStageTokens(candidateStage) {
		if strings.EqualFold(strings.TrimSpace(token), strings.TrimSpace(profileStage)) {
			return 1.0
		}
		c := stageIndex(token)
		if p < 0 || c < 0 {
			continue
		}
		switch {
		case p == c:
			return 1.0
		case p-c == 1 || c-p == 1:
			best = 0.5
		}
	}
	return best
}

func splitStageTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ',' || r == ';' || r == '|'
	})
}
