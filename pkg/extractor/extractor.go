// Package extractor coerces the arbitrary value shapes found in raw records
// (strings, numbers, arrays, nested objects) into usable strings.
package extractor

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Stringify converts a value to its string form. Nested objects are flattened
// by joining their non-empty values with ", "; arrays are joined the same way.
// Nil and unknown types yield "".
func Stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case map[string]any:
		return FlattenMap(val)
	case []any:
		parts := Strings(val)
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	case json.Number:
		return val.String()
	case nil:
		return ""
	default:
		return ""
	}
}

// Strings converts a value to a list of non-blank strings. Arrays yield one
// entry per element; scalars yield a single entry; blanks are dropped.
func Strings(v any) []string {
	var out []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			s := strings.TrimSpace(Stringify(item))
			if s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range val {
			s := strings.TrimSpace(item)
			if s != "" {
				out = append(out, s)
			}
		}
	default:
		s := strings.TrimSpace(Stringify(v))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FlattenMap joins the non-empty scalar values of a nested object with ", ".
// Keys are visited in sorted order so repeated resolution is stable.
func FlattenMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		switch v := m[k].(type) {
		case map[string]any:
			// one level only; deeper structure is not worth chasing
			continue
		case []any:
			continue
		default:
			s := strings.TrimSpace(Stringify(v))
			if s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, ", ")
}

// StringValues returns every string-typed value in the record, including
// strings one level inside sub-objects and arrays. Keys are visited in sorted
// order so heuristics scanning the result are deterministic.
func StringValues(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		switch v := record[k].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				out = append(out, v)
			}
		case map[string]any:
			nestedKeys := make([]string, 0, len(v))
			for nk := range v {
				nestedKeys = append(nestedKeys, nk)
			}
			sort.Strings(nestedKeys)
			for _, nk := range nestedKeys {
				if s, ok := v[nk].(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			}
		case []string:
			for _, s := range v {
				if strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// IsBlank reports whether a value has no usable content once coerced.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	return strings.TrimSpace(Stringify(v)) == ""
}

// FromJSON parses JSON data and returns it as a map.
func FromJSON(data json.RawMessage) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
