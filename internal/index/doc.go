// Package index builds the enumerable app universe.
//
// Build enumerates launchable activities for every profile the platform
// reports, merges the rename map and hidden set from prefs, orders the
// result with a locale-aware collator and, for the default listing only,
// appends the sentinel padding entry. A profile whose enumeration fails
// contributes nothing; the failure is logged and the rest of the listing is
// still produced.
//
// Refresher runs Build on a background goroutine and publishes immutable
// snapshots. Only the most recently issued refresh may publish; a
// superseded refresh is cancelled and its result discarded even if it
// completes later.
package index
