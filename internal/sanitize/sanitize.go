// Package sanitize cleans free-form request input before validation.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// String cleans a single string value: trims leading/trailing whitespace,
// strips markup tags, HTML-entity-escapes the rest (quotes included) and
// collapses internal whitespace runs to a single space.
//
// Input is folded to entity-free form first so that re-running String over
// already-sanitized data yields the same result.
func String(s string) string {
	s = strings.TrimSpace(s)
	s = html.UnescapeString(s)
	s = tagPattern.ReplaceAllString(s, "")
	s = html.EscapeString(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Value recursively cleans every string leaf of an arbitrarily nested
// structure of maps, slices and scalars, preserving shape. Non-string
// scalars pass through untouched. The input is not modified.
func Value(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return String(val)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Value(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	default:
		return v
	}
}

// Map is a convenience wrapper for the common top-level request shape.
func Map(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	return Value(m).(map[string]interface{})
}
