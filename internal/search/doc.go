// Package search is the filter engine over an app listing.
//
// A candidate matches when its label contains the trimmed query ignoring
// case, or when the normalised label contains the normalised query.
// Normalisation decomposes to NFD, drops combining marks, drops the
// separators "-_+,. " and case-folds, so "cafe" finds "Café" and
// "subzero" finds "Sub-Zero". Filtering is stable and never matches the
// sentinel padding entry.
package search
