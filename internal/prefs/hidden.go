package prefs

import (
	"context"
	"slices"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/store"
)

// HiddenSet is the set of identities excluded from default listings.
//
// An identity with apps.AnyProfile hides the package under every profile.
// The zero value is an empty set.
type HiddenSet struct {
	ids map[apps.Identity]struct{}
}

// NewHiddenSet creates a set holding ids.
func NewHiddenSet(ids ...apps.Identity) *HiddenSet {
	h := &HiddenSet{}
	for _, id := range ids {
		h.Hide(id)
	}
	return h
}

// Contains reports whether id is hidden, either exactly or through a
// package-wide entry.
func (h *HiddenSet) Contains(id apps.Identity) bool {
	if h == nil || h.ids == nil {
		return false
	}
	if _, ok := h.ids[id]; ok {
		return true
	}
	_, ok := h.ids[apps.Identity{Package: id.Package, Profile: apps.AnyProfile}]
	return ok
}

// Hide adds id.
func (h *HiddenSet) Hide(id apps.Identity) {
	if h.ids == nil {
		h.ids = make(map[apps.Identity]struct{})
	}
	h.ids[id] = struct{}{}
}

// Unhide removes id and any package-wide entry for its package, so the
// app is visible afterwards.
func (h *HiddenSet) Unhide(id apps.Identity) {
	delete(h.ids, id)
	delete(h.ids, apps.Identity{Package: id.Package, Profile: apps.AnyProfile})
}

// Len returns the number of stored entries.
func (h *HiddenSet) Len() int {
	if h == nil {
		return 0
	}
	return len(h.ids)
}

// Strings returns the persisted forms in sorted order.
func (h *HiddenSet) Strings() []string {
	if h == nil {
		return nil
	}
	out := make([]string, 0, len(h.ids))
	for id := range h.ids {
		out = append(out, id.String())
	}
	slices.Sort(out)
	return out
}

// HiddenApps loads the hidden set.
func (p *Prefs) HiddenApps(ctx context.Context) (*HiddenSet, error) {
	members, err := p.getSet(ctx, KeyHiddenApps)
	if err != nil {
		return nil, err
	}
	h := &HiddenSet{}
	for _, m := range members {
		h.Hide(apps.ParseIdentity(m))
	}
	return h, nil
}

// SetHiddenApps replaces the hidden set.
func (p *Prefs) SetHiddenApps(ctx context.Context, h *HiddenSet) error {
	return p.put(ctx, KeyHiddenApps, store.Set(h.Strings()...))
}

// FirstHide reports whether no app has been hidden yet (default true).
func (p *Prefs) FirstHide(ctx context.Context) (bool, error) {
	return p.getBool(ctx, KeyFirstHide, true)
}

// SetFirstHide records the first-hide flag.
func (p *Prefs) SetFirstHide(ctx context.Context, v bool) error {
	return p.put(ctx, KeyFirstHide, store.Bool(v))
}
