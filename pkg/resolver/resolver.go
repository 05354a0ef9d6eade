// Package resolver extracts canonical candidate attributes from raw,
// schema-inconsistent records using prioritized alias lookup with content
// heuristics as fallback.
package resolver

import (
	"sort"
	"strings"

	"github.com/Ramsey-B/fern/pkg/extractor"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Resolve derives the canonical view of one raw record using the given alias
// table. Resolution is a pure function of its inputs: it never errors and
// never returns null-ish values. An attribute no alias or heuristic can
// produce resolves to the display sentinel (or "" for scored-only fields).
func Resolve(record models.RawRecord, table AliasTable) models.ResolvedCandidate {
	idx := indexKeys(record)

	name := lookup(idx, table[models.AttributeName])
	partner := lookup(idx, table[models.AttributePartner])
	email := lookup(idx, table[models.AttributeEmail])
	focus := lookupList(idx, table[models.AttributeFocus])
	stage := lookup(idx, table[models.AttributeStage])
	ticket := lookup(idx, table[models.AttributeTicket])

	values := extractor.StringValues(record)

	if email == "" {
		email = FindEmail(values)
	}
	if partner == "" && email != "" {
		partner = NameFromEmail(email)
	}
	if name == "" {
		name = FindName(values)
	}
	if len(focus) == 0 {
		focus = FindSectors(freeText(idx))
	}
	if stage == "" {
		stage = FindStage(strings.Join(values, " "))
	}

	location := composeLocation(idx, table[models.AttributeLocation])

	return models.ResolvedCandidate{
		DisplayName:  orUnresolved(name),
		PartnerName:  orUnresolved(partner),
		Email:        orUnresolved(email),
		FocusSectors: focus,
		Stage:        stage,
		Location:     orUnresolved(location),
		TicketSize:   ticket,
	}
}

// indexKeys builds a case-insensitive index of the record's own keys. Keys
// are visited in sorted order and the first lowercased form wins, so records
// with colliding keys still resolve deterministically.
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

// lookup walks the alias list in priority order and returns the first
// non-blank value, coerced to a string. Nested objects flatten to their
// joined values; arrays join with ", ".
func lookup(idx map[string]any, aliases []string) string {
	for _, alias := range aliases {
		v, ok := idx[strings.ToLower(alias)]
		if !ok || extractor.IsBlank(v) {
			continue
		}
		return strings.TrimSpace(extractor.Stringify(v))
	}
	return ""
}

// lookupList resolves a list-valued attribute. Arrays stay one entry per
// element; a scalar hit is split on commas so "fintech, saas" yields both.
func lookupList(idx map[string]any, aliases []string) []string {
	for _, alias := range aliases {
		v, ok := idx[strings.ToLower(alias)]
		if !ok || extractor.IsBlank(v) {
			continue
		}
		switch v.(type) {
		case []any, []string:
			return extractor.Strings(v)
		default:
			return splitList(extractor.Stringify(v))
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// composeLocation collects city/state/province/country components and every
// raw location alias independently, de-duplicates them (case-sensitive,
// first-seen order), and joins with ", ". This produces a usable composite
// even when no single field is complete.
func composeLocation(idx map[string]any, aliases []string) string {
	var parts []string
	seen := make(map[string]bool)

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		parts = append(parts, s)
	}

	for _, key := range locationComponents {
		if v, ok := idx[key]; ok && !extractor.IsBlank(v) {
			add(extractor.Stringify(v))
		}
	}
	for _, alias := range aliases {
		if v, ok := idx[strings.ToLower(alias)]; ok && !extractor.IsBlank(v) {
			// a raw location value may itself be comma-separated
			for _, piece := range splitList(extractor.Stringify(v)) {
				add(piece)
			}
		}
	}

	return strings.Join(parts, ", ")
}

// freeTextKeys are the fields mined for sector keywords when no focus alias
// matched.
var freeTextKeys = []string{"description", "notes", "thesis", "about", "summary", "bio", "categories", "tags"}

func freeText(idx map[string]any) string {
	var parts []string
	for _, key := range freeTextKeys {
		if v, ok := idx[key]; ok && !extractor.IsBlank(v) {
			parts = append(parts, extractor.Stringify(v))
		}
	}
	return strings.Join(parts, " ")
}

func orUnresolved(s string) string {
	if s == "" {
		return models.Unresolved
	}
	return s
}
