package resolver

import (
	"regexp"
	"strings"

	"github.com/Ramsey-B/fern/pkg/normalizers"
)

// Content heuristics run only when no alias matched. Each one is a pure
// function over strings so it can be tested in isolation.

const maxEmailLength = 120
const maxNameLength = 40

// FindEmail returns the first value containing "@" with a plausible length.
func FindEmail(values []string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || len(v) > maxEmailLength {
			continue
		}
		if strings.Contains(v, "@") {
			return v
		}
	}
	return ""
}

// NameFromEmail derives a display name from an email's local part by
// splitting on "_", ".", and "-" and title-casing each token.
// "j.doe@acme.vc" becomes "J Doe".
func NameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return ""
	}
	tokens := strings.FieldsFunc(local, func(r rune) bool {
		return r == '_' || r == '.' || r == '-'
	})
	return normalizers.TitleCase(strings.Join(tokens, " "))
}

// stagePattern pairs a canonical stage label with the regex that detects it.
// Order matters: "pre-seed" must be tested before the bare "seed" pattern,
// and "pre-ipo" before "ipo".
type stagePattern struct {
	label string
	re    *regexp.Regexp
}

var stagePatterns = []stagePattern{
	{"Pre-Seed", regexp.MustCompile(`pre[\s_-]?seed`)},
	{"Seed", regexp.MustCompile(`\bseed\b`)},
	{"Series A", regexp.MustCompile(`series\s*a\b`)},
	{"Series B", regexp.MustCompile(`series\s*b\b`)},
	{"Series C", regexp.MustCompile(`series\s*c\b`)},
	{"Growth", regexp.MustCompile(`\bgrowth\b`)},
	{"Late Stage", regexp.MustCompile(`late[\s_-]?stage`)},
	{"Pre-IPO", regexp.MustCompile(`pre[\s_-]?ipo`)},
	{"IPO", regexp.MustCompile(`\bipo\b`)},
}

// FindStage tests the stage keyword ladder against free text and returns the
// label of the first pattern that matches, or "".
func FindStage(text string) string {
	text = strings.ToLower(text)
	for _, p := range stagePatterns {
		if p.re.MatchString(text) {
			return p.label
		}
	}
	return ""
}

// sectorVocabulary is the fixed keyword set intersected against free text
// when no focus alias matched. Labels are the lowercase form callers see.
var sectorVocabulary = []string{
	"fintech", "saas", "healthcare", "healthtech", "medtech", "biotech",
	"ai", "machine learning", "edtech", "ecommerce", "e-commerce",
	"climate", "cleantech", "cybersecurity", "proptech", "insurtech",
	"logistics", "robotics", "gaming", "consumer", "enterprise",
	"marketplace", "web3", "crypto", "agtech", "foodtech", "hardware",
	"mobility",
}

var sectorPatterns = buildSectorPatterns()

func buildSectorPatterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(sectorVocabulary))
	for _, term := range sectorVocabulary {
		out[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return out
}

const maxFocusSectors = 2

// FindSectors intersects free text against the sector vocabulary and returns
// up to two distinct matches in order of first appearance in the text.
func FindSectors(text string) []string {
	text = strings.ToLower(text)

	type hit struct {
		term  string
		index int
	}
	var hits []hit
	for _, term := range sectorVocabulary {
		loc := sectorPatterns[term].FindStringIndex(text)
		if loc != nil {
			hits = append(hits, hit{term: term, index: loc[0]})
		}
	}

	// order of first appearance, not vocabulary order
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].index < hits[j-1].index; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	var out []string
	for _, h := range hits {
		if len(out) == maxFocusSectors {
			break
		}
		out = append(out, h.term)
	}
	return out
}

// FindName returns the first value that looks like a name: alphabetic,
// no "@", and at most 40 characters.
func FindName(values []string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || len(v) > maxNameLength || strings.Contains(v, "@") {
			continue
		}
		if normalizers.IsAlphabetic(v) {
			return v
		}
	}
	return ""
}
