// Package search narrows a collection by a free-text query.
package search

import (
	"strings"

	"tableflip.dev/bizdesk/pkg/record"
)

// Filter keeps the items where any of fields contains query, ignoring case.
// A blank query returns items itself. The result is always derived from the
// full input, never from an earlier result.
func Filter(items []record.Record, query string, fields ...string) []record.Record {
	if strings.TrimSpace(query) == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]record.Record, 0, len(items))
	for _, it := range items {
		if Match(it, q, fields...) {
			out = append(out, it)
		}
	}
	return out
}

// Match reports whether r matches the already lowercased query q.
func Match(r record.Record, q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(r.String(f)), q) {
			return true
		}
	}
	return false
}
