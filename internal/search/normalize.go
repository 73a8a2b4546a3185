package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separators are removed before normalised comparison.
const separators = "-_+,. "

var separatorSet = runes.Predicate(func(r rune) bool {
	return strings.ContainsRune(separators, r)
})

// Normalize returns the comparison form of s. Transformers carry state, so
// a new chain is built per call.
func Normalize(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(separatorSet),
		cases.Fold(),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return fold(s)
	}
	return out
}

// fold case-folds s without any other normalisation.
func fold(s string) string {
	return cases.Fold().String(s)
}
