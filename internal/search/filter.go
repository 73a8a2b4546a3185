package search

import (
	"strings"

	"github.com/roach88/launchcore/internal/apps"
)

// Filter returns the entries of corpus whose label matches query, in
// corpus order. A blank query returns the corpus unchanged, sentinel
// included; otherwise the sentinel never matches.
func Filter(corpus []apps.Entry, query string) []apps.Entry {
	q := strings.TrimSpace(query)
	if q == "" {
		return corpus
	}

	raw := fold(q)
	normalized := Normalize(q)

	out := make([]apps.Entry, 0, len(corpus))
	for _, e := range corpus {
		if e.IsSentinel() {
			continue
		}
		if Matches(e.Label, raw, normalized) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether label matches a query given in folded and
// normalised form. An empty normalised query (a query of separators only)
// matches through the raw comparison alone.
func Matches(label, foldedQuery, normalizedQuery string) bool {
	if strings.Contains(fold(label), foldedQuery) {
		return true
	}
	if normalizedQuery == "" {
		return false
	}
	return strings.Contains(Normalize(label), normalizedQuery)
}

// IsBang reports whether the raw query is a bang search.
func IsBang(query string) bool {
	return strings.HasPrefix(query, "!")
}

// ShouldAutoLaunch reports whether the consumer may launch the only
// result without confirmation. Bang searches, queries with a leading
// space and blank queries never auto-launch.
func ShouldAutoLaunch(query string, results []apps.Entry) bool {
	if IsBang(query) || strings.HasPrefix(query, " ") || strings.TrimSpace(query) == "" {
		return false
	}
	return apps.CountReal(results) == 1
}
