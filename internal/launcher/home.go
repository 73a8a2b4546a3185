package launcher

import (
	"context"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/funnel"
	"github.com/roach88/launchcore/internal/gesture"
	"github.com/roach88/launchcore/internal/prefs"
	"github.com/roach88/launchcore/internal/slots"
)

// Notices shown on the home screen.
const (
	NoticeSelectApp    = "long press to select app"
	NoticeNewWallpaper = "loading new wallpaper"
)

// HomeSlot is one rendered home slot.
type HomeSlot struct {
	Slot     apps.Slot
	Kind     slots.Kind
	Label    string
	Category string
}

// Home renders the visible home slots. A binding whose package is gone
// renders empty but stays stored.
func (l *Launcher) Home(ctx context.Context) ([]HomeSlot, error) {
	n, err := l.prefs.HomeAppsNum(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HomeSlot, 0, n)
	for i := 1; i <= n; i++ {
		slot, err := apps.HomeSlot(i)
		if err != nil {
			return nil, err
		}
		a, err := l.slots.Resolve(ctx, slot)
		if err != nil && !apps.IsNotFound(err) {
			return nil, err
		}
		hs := HomeSlot{Slot: slot, Kind: a.Kind(), Category: a.Category}
		if a.App != nil {
			hs.Label = a.App.Label
		}
		out = append(out, hs)
	}
	return out, nil
}

// Binding returns the stored content of slot.
func (l *Launcher) Binding(ctx context.Context, slot apps.Slot) (slots.Assignment, error) {
	return l.slots.Binding(ctx, slot)
}

// AssignSlot binds e to slot.
func (l *Launcher) AssignSlot(ctx context.Context, slot apps.Slot, e apps.Entry) error {
	return l.slots.Assign(ctx, slot, e)
}

// AssignCategory binds a category view to a home slot.
func (l *Launcher) AssignCategory(ctx context.Context, slot apps.Slot, name string) error {
	return l.slots.AssignCategory(ctx, slot, name)
}

// ClearSlot removes the binding of slot.
func (l *Launcher) ClearSlot(ctx context.Context, slot apps.Slot) error {
	return l.slots.Clear(ctx, slot)
}

// RenameSlot relabels the app on a home slot.
func (l *Launcher) RenameSlot(ctx context.Context, slot apps.Slot, label string) error {
	return l.slots.Rename(ctx, slot, label)
}

// OpenSlot handles a tap on slot.
func (l *Launcher) OpenSlot(ctx context.Context, slot apps.Slot) (Effect, error) {
	if slot == apps.SlotSwipeLeft || slot == apps.SlotSwipeRight {
		on, err := l.prefs.SwipeEnabled(ctx, slot == apps.SlotSwipeLeft)
		if err != nil {
			return Effect{}, err
		}
		if !on {
			return Effect{}, nil
		}
	}

	a, err := l.slots.Binding(ctx, slot)
	if err != nil {
		return Effect{}, err
	}
	if a.App != nil {
		return l.launch(ctx, a.App.Package, a.App.Activity, a.App.Profile)
	}

	switch slot {
	case apps.SlotSwipeLeft:
		return l.openSystem(ctx, apps.TargetCamera)
	case apps.SlotSwipeRight:
		return l.openSystem(ctx, apps.TargetDialer)
	case apps.SlotClock:
		return l.openSystem(ctx, apps.TargetAlarm)
	case apps.SlotCalendar:
		return l.openSystem(ctx, apps.TargetCalendar)
	}

	if a.Category != "" {
		eff := drawer(LaunchIntent())
		eff.Category = a.Category
		return eff, nil
	}
	return notice(NoticeSelectApp), nil
}

// LongPressSlot handles a long press on slot: it opens the picker for it.
// Clock and calendar bindings are cleared first so the platform default
// applies until a new app is chosen.
func (l *Launcher) LongPressSlot(ctx context.Context, slot apps.Slot) (Effect, error) {
	eff := drawer(SlotIntent(slot))
	switch {
	case slot.IsHome():
		a, err := l.slots.Binding(ctx, slot)
		if err != nil {
			return Effect{}, err
		}
		eff.IncludeHidden = true
		eff.Rename = a.App != nil
	case slot == apps.SlotClock || slot == apps.SlotCalendar:
		if err := l.slots.Clear(ctx, slot); err != nil {
			return Effect{}, err
		}
	}
	return eff, nil
}

// SetDefaultClockApp binds the first installed known clock package to the
// clock slot when it is empty. It reports whether a binding was made.
func (l *Launcher) SetDefaultClockApp(ctx context.Context) (bool, error) {
	a, err := l.slots.Binding(ctx, apps.SlotClock)
	if err != nil {
		return false, err
	}
	if a.App != nil {
		return false, nil
	}
	current := l.device.CurrentProfile()
	for _, pkg := range l.opts.ClockPackages {
		acts, err := l.device.PackageActivities(ctx, pkg, current)
		if err != nil {
			return false, err
		}
		if len(acts) == 0 {
			continue
		}
		e := apps.Entry{Label: acts[0].Label, Package: pkg, ActivityClass: acts[0].Class, Profile: current}
		if err := l.slots.Assign(ctx, apps.SlotClock, e); err != nil {
			return false, err
		}
		l.log.Info("default clock app bound", "package", pkg)
		return true, nil
	}
	return false, nil
}

// Gesture handles a classified gesture on the home screen.
func (l *Launcher) Gesture(ctx context.Context, g gesture.Gesture) (Effect, error) {
	return gesture.Dispatch[Effect](ctx, homeGestures{l}, g)
}

type homeGestures struct{ l *Launcher }

func (h homeGestures) SwipeLeft(ctx context.Context) (Effect, error) {
	return h.l.OpenSlot(ctx, apps.SlotSwipeLeft)
}

func (h homeGestures) SwipeRight(ctx context.Context) (Effect, error) {
	return h.l.OpenSlot(ctx, apps.SlotSwipeRight)
}

func (h homeGestures) SwipeUp(context.Context) (Effect, error) {
	return drawer(LaunchIntent()), nil
}

func (h homeGestures) SwipeDown(ctx context.Context) (Effect, error) {
	action, err := h.l.prefs.SwipeDownAction(ctx)
	if err != nil {
		return Effect{}, err
	}
	if action == prefs.SwipeDownSearch {
		return h.l.openSystem(ctx, apps.TargetSearch)
	}
	return h.l.openSystem(ctx, apps.TargetNotifications)
}

func (h homeGestures) LongClick(context.Context) (Effect, error) {
	return Effect{Kind: EffectOpenSettings}, nil
}

func (h homeGestures) DoubleClick(ctx context.Context) (Effect, error) {
	return h.l.openSystem(ctx, apps.TargetLockScreen)
}

func (h homeGestures) TripleClick(ctx context.Context) (Effect, error) {
	on, err := h.l.funnel.DailyWallpaper(ctx)
	if err != nil || !on {
		return Effect{}, err
	}
	return notice(NoticeNewWallpaper), nil
}

func (h homeGestures) Click(ctx context.Context) (Effect, error) {
	d, err := h.l.CheckFunnel(ctx)
	if err != nil || d == funnel.DialogNone {
		return Effect{}, err
	}
	return Effect{Kind: EffectDialog, Dialog: d}, nil
}
