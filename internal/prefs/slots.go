package prefs

import (
	"context"
	"fmt"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/store"
)

// SlotRecord is the raw persisted content of one slot. Empty fields are
// absent keys.
type SlotRecord struct {
	Label    string
	Package  string
	Profile  apps.Profile
	Activity string
	Category string
}

// IsEmpty reports whether the slot has neither an app nor a category.
func (r SlotRecord) IsEmpty() bool {
	return r.Package == "" && r.Category == ""
}

// Slot reads the stored record of slot.
func (p *Prefs) Slot(ctx context.Context, slot apps.Slot) (SlotRecord, error) {
	k, err := keysFor(slot)
	if err != nil {
		return SlotRecord{}, err
	}

	var r SlotRecord
	var profile string
	for _, f := range []struct {
		key string
		dst *string
	}{
		{k.Name, &r.Label},
		{k.Package, &r.Package},
		{k.Profile, &profile},
		{k.Activity, &r.Activity},
		{k.Category, &r.Category},
	} {
		if f.key == "" {
			continue
		}
		if *f.dst, err = p.getString(ctx, f.key, ""); err != nil {
			return SlotRecord{}, err
		}
	}
	r.Profile = apps.Profile(profile)
	return r, nil
}

// PutSlot replaces the stored record of slot in a single atomic batch.
// Empty fields delete their key.
func (p *Prefs) PutSlot(ctx context.Context, slot apps.Slot, r SlotRecord) error {
	k, err := keysFor(slot)
	if err != nil {
		return err
	}
	if r.Category != "" && k.Category == "" {
		return fmt.Errorf("slot %s cannot hold a category", slot)
	}

	b := store.NewBatch()
	put := func(key, val string) {
		if key == "" {
			return
		}
		if val == "" {
			b.Delete(key)
			return
		}
		b.Put(key, store.String(val))
	}
	put(k.Name, r.Label)
	put(k.Package, r.Package)
	put(k.Profile, string(r.Profile))
	put(k.Activity, r.Activity)
	put(k.Category, r.Category)

	if err := p.kv.Apply(ctx, b); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

// SetSlotLabel overwrites only the display label of slot.
func (p *Prefs) SetSlotLabel(ctx context.Context, slot apps.Slot, label string) error {
	k, err := keysFor(slot)
	if err != nil {
		return err
	}
	if label == "" {
		return p.kv.Apply(ctx, store.NewBatch().Delete(k.Name))
	}
	return p.put(ctx, k.Name, store.String(label))
}
