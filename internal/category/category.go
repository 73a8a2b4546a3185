// Package category computes category views over an app listing.
//
// Categories are per package and independent of profile. "All" and
// "Uncategorized" are computed views and can never be stored as a label.
package category

import (
	"slices"
	"strings"

	"github.com/roach88/launchcore/internal/apps"
)

// Reserved view names.
const (
	All           = "All"
	Uncategorized = "Uncategorized"
)

// Map holds each package's category labels.
type Map map[string][]string

// Of returns the labels of pkg.
func (m Map) Of(pkg string) []string {
	return m[pkg]
}

// Has reports whether pkg carries label.
func (m Map) Has(pkg, label string) bool {
	return slices.Contains(m[pkg], label)
}

// IsReserved reports whether name is a computed view.
func IsReserved(name string) bool {
	return strings.EqualFold(name, All) || strings.EqualFold(name, Uncategorized)
}

// ValidateLabel checks that label can be stored on a package.
func ValidateLabel(label string) error {
	switch {
	case strings.TrimSpace(label) == "":
		return apps.NewInvalid("category label is empty")
	case IsReserved(label):
		return apps.NewInvalid("category %q is reserved", label)
	}
	return nil
}

// View returns the entries of corpus that belong to the named view, in
// corpus order. An empty name is the All view. A trailing sentinel in
// corpus is kept at the end of every view.
func View(corpus []apps.Entry, m Map, name string) []apps.Entry {
	if name == "" || strings.EqualFold(name, All) {
		return corpus
	}
	uncategorized := strings.EqualFold(name, Uncategorized)

	out := make([]apps.Entry, 0, len(corpus))
	var sentinel *apps.Entry
	for i, e := range corpus {
		if e.IsSentinel() {
			sentinel = &corpus[i]
			continue
		}
		var keep bool
		if uncategorized {
			keep = len(m.Of(e.Package)) == 0
		} else {
			keep = m.Has(e.Package, name)
		}
		if keep {
			out = append(out, e)
		}
	}
	if sentinel != nil {
		out = append(out, *sentinel)
	}
	return out
}

// Names lists the selectable views: All, the configured categories, any
// other label in use (sorted), then Uncategorized.
func Names(m Map, configured []string) []string {
	out := []string{All}
	seen := map[string]bool{All: true, Uncategorized: true}
	for _, c := range configured {
		if !seen[c] && !IsReserved(c) && strings.TrimSpace(c) != "" {
			out = append(out, c)
			seen[c] = true
		}
	}

	var extra []string
	for _, labels := range m {
		for _, l := range labels {
			if !seen[l] {
				extra = append(extra, l)
				seen[l] = true
			}
		}
	}
	slices.Sort(extra)
	out = append(out, extra...)
	return append(out, Uncategorized)
}
