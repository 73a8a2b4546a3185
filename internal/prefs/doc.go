// Package prefs is the typed preference layer of the launcher core.
//
// Prefs wraps an injected store.KV and knows every key the core reads or
// writes: per-slot bindings, the hidden set, per-package rename labels and
// category sets, and the engagement funnel bookkeeping. There is no ambient
// singleton; each component receives the *Prefs it should use.
//
// Legacy key formats are handled once, by Migrate, which rewrites them into
// the current canonical form and records PREFS_VERSION. Steady-state reads
// only understand the canonical form.
package prefs
