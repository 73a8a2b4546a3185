package search

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/roach88/launchcore/internal/apps"
)

// DefaultBangURL is the bang search prefix the query is appended to.
const DefaultBangURL = "https://duckduckgo.com/?q="

// ActionKind classifies a submitted query.
type ActionKind int

const (
	// ActionLaunch launches Action.Entry.
	ActionLaunch ActionKind = iota + 1
	// ActionBangSearch opens Action.URL.
	ActionBangSearch
	// ActionWebSearch hands Action.Query to the generic web search.
	ActionWebSearch
)

func (k ActionKind) String() string {
	switch k {
	case ActionLaunch:
		return "launch"
	case ActionBangSearch:
		return "bang-search"
	case ActionWebSearch:
		return "web-search"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is the routing decision for a submitted query.
type Action struct {
	Kind  ActionKind
	Entry apps.Entry // ActionLaunch
	URL   string     // ActionBangSearch
	Query string     // ActionWebSearch

	// Suggestion is the closest label when nothing matched. It does not
	// change routing.
	Suggestion string
}

// Submit routes a submitted query. results is the filtered listing for the
// same query; corpus is the listing it was filtered from and is only used
// for suggestions.
func Submit(query string, results, corpus []apps.Entry, bangURL string) Action {
	q := strings.TrimSpace(query)
	if IsBang(q) {
		if bangURL == "" {
			bangURL = DefaultBangURL
		}
		return Action{Kind: ActionBangSearch, URL: bangURL + strings.ReplaceAll(q, " ", "%20")}
	}
	if first, ok := apps.FirstReal(results); ok {
		return Action{Kind: ActionLaunch, Entry: first}
	}
	return Action{Kind: ActionWebSearch, Query: q, Suggestion: Suggest(corpus, q)}
}

// Suggest returns the label closest to query by edit distance over the
// normalised forms, or "" when corpus has no real entries or query is
// blank. Ties keep the earlier entry.
func Suggest(corpus []apps.Entry, query string) string {
	nq := Normalize(query)
	if nq == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, e := range corpus {
		if e.IsSentinel() {
			continue
		}
		d := levenshtein.ComputeDistance(nq, Normalize(e.Label))
		if bestDist < 0 || d < bestDist {
			best, bestDist = e.Label, d
		}
	}
	return best
}
