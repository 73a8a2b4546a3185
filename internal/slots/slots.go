package slots

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/index"
	"github.com/roach88/launchcore/internal/prefs"
)

// Binding is a concrete app bound to a slot.
type Binding struct {
	Label    string
	Package  string
	Activity string
	Profile  apps.Profile
}

// Kind classifies an Assignment.
type Kind int

const (
	KindEmpty Kind = iota
	KindApp
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindApp:
		return "app"
	case KindCategory:
		return "category"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Assignment is the content of one slot. At most one of App and Category
// is set.
type Assignment struct {
	Slot     apps.Slot
	App      *Binding
	Category string
}

// Kind reports which binding the assignment holds.
func (a Assignment) Kind() Kind {
	switch {
	case a.App != nil:
		return KindApp
	case a.Category != "":
		return KindCategory
	}
	return KindEmpty
}

// Model reads and writes slot assignments.
type Model struct {
	prefs    *prefs.Prefs
	platform index.Platform
	log      *slog.Logger
}

// New creates a Model. A nil logger uses slog.Default().
func New(p *prefs.Prefs, platform index.Platform, log *slog.Logger) *Model {
	if log == nil {
		log = slog.Default()
	}
	return &Model{prefs: p, platform: platform, log: log}
}

// Assign binds e to slot, clearing any category on it.
func (m *Model) Assign(ctx context.Context, slot apps.Slot, e apps.Entry) error {
	if e.IsSentinel() || e.Package == "" {
		return apps.NewInvalid("cannot assign an empty app to %s", slot)
	}
	rec := prefs.SlotRecord{
		Label:    e.Label,
		Package:  e.Package,
		Profile:  e.Profile,
		Activity: e.ActivityClass,
	}
	if err := m.prefs.PutSlot(ctx, slot, rec); err != nil {
		return fmt.Errorf("assign %s: %w", slot, err)
	}
	m.log.Debug("slot assigned", "slot", string(slot), "package", e.Package, "profile", string(e.Profile))
	return nil
}

// AssignCategory binds a category to a home slot, clearing any app on it.
func (m *Model) AssignCategory(ctx context.Context, slot apps.Slot, name string) error {
	if !slot.IsHome() {
		return apps.NewInvalid("slot %s cannot hold a category", slot)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apps.NewInvalid("category name is empty")
	}
	if err := m.prefs.PutSlot(ctx, slot, prefs.SlotRecord{Category: name}); err != nil {
		return fmt.Errorf("assign category to %s: %w", slot, err)
	}
	m.log.Debug("slot category assigned", "slot", string(slot), "category", name)
	return nil
}

// Binding returns the stored assignment without validating it.
func (m *Model) Binding(ctx context.Context, slot apps.Slot) (Assignment, error) {
	rec, err := m.prefs.Slot(ctx, slot)
	if err != nil {
		return Assignment{}, fmt.Errorf("read %s: %w", slot, err)
	}
	a := Assignment{Slot: slot}
	switch {
	case rec.Package != "":
		a.App = &Binding{
			Label:    rec.Label,
			Package:  rec.Package,
			Activity: rec.Activity,
			Profile:  rec.Profile,
		}
	case rec.Category != "":
		a.Category = rec.Category
	}
	return a, nil
}

// Resolve returns the assignment for display. An app binding whose package
// is no longer installed for its profile resolves to an empty assignment
// and a NOT_FOUND error; the stored binding is kept.
func (m *Model) Resolve(ctx context.Context, slot apps.Slot) (Assignment, error) {
	a, err := m.Binding(ctx, slot)
	if err != nil || a.App == nil {
		return a, err
	}
	installed, err := index.IsInstalled(ctx, m.platform, a.App.Package, a.App.Profile)
	if err != nil {
		return Assignment{}, fmt.Errorf("check %s: %w", a.App.Package, err)
	}
	if !installed {
		return Assignment{Slot: slot}, apps.NewNotFound(a.App.Package, a.App.Profile)
	}
	return a, nil
}

// Clear removes every binding from slot.
func (m *Model) Clear(ctx context.Context, slot apps.Slot) error {
	if err := m.prefs.PutSlot(ctx, slot, prefs.SlotRecord{}); err != nil {
		return fmt.Errorf("clear %s: %w", slot, err)
	}
	return nil
}

// Rename changes only the display label of an app bound to a home slot.
func (m *Model) Rename(ctx context.Context, slot apps.Slot, label string) error {
	if !slot.IsHome() {
		return apps.NewInvalid("slot %s cannot be renamed", slot)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return apps.NewInvalid("label is empty")
	}
	a, err := m.Binding(ctx, slot)
	if err != nil {
		return err
	}
	if a.App == nil {
		return apps.NewInvalid("slot %s has no app to rename", slot)
	}
	return m.prefs.SetSlotLabel(ctx, slot, label)
}
