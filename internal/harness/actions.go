package harness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/device"
	"github.com/roach88/launchcore/internal/funnel"
	"github.com/roach88/launchcore/internal/gesture"
	"github.com/roach88/launchcore/internal/launcher"
	"github.com/roach88/launchcore/internal/slots"
)

// ErrBadArgs marks a malformed step. It aborts the scenario instead of
// becoming a completion case.
var ErrBadArgs = errors.New("bad step arguments")

type actionFunc func(ctx context.Context, h *Harness, a args) (map[string]any, error)

var actions = map[string]actionFunc{
	"advance":         actAdvance,
	"set_time":        actSetTime,
	"list_apps":       actListApps,
	"select_app":      actSelectApp,
	"submit":          actSubmit,
	"toggle_hidden":   actToggleHidden,
	"rename_app":      actRenameApp,
	"set_categories":  actSetCategories,
	"category_names":  actCategoryNames,
	"uninstall":       actUninstall,
	"assign_slot":     actAssignSlot,
	"assign_category": actAssignCategory,
	"clear_slot":      actClearSlot,
	"rename_slot":     actRenameSlot,
	"open_slot":       actOpenSlot,
	"long_press_slot": actLongPressSlot,
	"home":            actHome,
	"gesture":         actGesture,
	"check_funnel":    actCheckFunnel,
	"dialog_shown":    actDialogShown,
	"rate_clicked":    actRateClicked,
	"funnel_state":    actFunnelState,
	"set_pref":        actSetPref,
	"device":          actDevice,
	"default_clock":   actDefaultClock,
}

func isKnownAction(name string) bool {
	_, ok := actions[name]
	return ok
}

// ActionNames lists the supported step actions.
func ActionNames() []string {
	out := make([]string, 0, len(actions))
	for name := range actions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// args wraps YAML step arguments with typed accessors.
type args map[string]any

func (a args) str(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrBadArgs, key, v)
	}
	return s, nil
}

func (a args) required(key string) (string, error) {
	s, err := a.str(key)
	if err == nil && s == "" {
		err = fmt.Errorf("%w: %s is required", ErrBadArgs, key)
	}
	return s, err
}

func (a args) boolean(key string, def bool) (bool, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a bool, got %T", ErrBadArgs, key, v)
	}
	return b, nil
}

func (a args) integer(key string) (int, error) {
	v, ok := a[key].(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be an int", ErrBadArgs, key)
	}
	return v, nil
}

func (a args) strings(key string) ([]string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list", ErrBadArgs, key)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must hold strings", ErrBadArgs, key)
		}
		out = append(out, s)
	}
	return out, nil
}

func (a args) slot() (apps.Slot, error) {
	s, err := a.required("slot")
	if err != nil {
		return "", err
	}
	slot, err := apps.ParseSlot(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	return slot, nil
}

func (a args) intent() (launcher.Intent, error) {
	s, err := a.str("intent")
	if err != nil {
		return launcher.Intent{}, err
	}
	in, err := launcher.ParseIntent(s)
	if err != nil {
		return launcher.Intent{}, fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	return in, nil
}

func (a args) entry(ctx context.Context, h *Harness) (apps.Entry, error) {
	pkg, err := a.required("package")
	if err != nil {
		return apps.Entry{}, err
	}
	profile, err := a.str("profile")
	if err != nil {
		return apps.Entry{}, err
	}
	return h.launcher.Find(ctx, pkg, apps.Profile(profile))
}

func effect(e launcher.Effect, err error) (map[string]any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]any{"effect": e.String()}, nil
}

func actAdvance(_ context.Context, h *Harness, a args) (map[string]any, error) {
	s, err := a.required("by")
	if err != nil {
		return nil, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("%w: by: %v", ErrBadArgs, err)
	}
	return map[string]any{"now": h.clock.Advance(d).Format(time.RFC3339)}, nil
}

func actSetTime(_ context.Context, h *Harness, a args) (map[string]any, error) {
	s, err := a.required("at")
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: at: %v", ErrBadArgs, err)
	}
	h.clock.Set(t)
	return map[string]any{"now": t.Format(time.RFC3339)}, nil
}

func actListApps(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	query, err := a.str("query")
	if err != nil {
		return nil, err
	}
	cat, err := a.str("category")
	if err != nil {
		return nil, err
	}
	intent, err := a.intent()
	if err != nil {
		return nil, err
	}
	listing, err := h.launcher.GetFilteredApps(ctx, query, intent, cat)
	if err != nil {
		return nil, err
	}
	labels := []string{}
	for _, e := range listing.Entries {
		if !e.IsSentinel() {
			labels = append(labels, e.Label)
		}
	}
	return map[string]any{
		"labels":      labels,
		"count":       len(labels),
		"auto_launch": listing.AutoLaunch,
	}, nil
}

func actSelectApp(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	e, err := a.entry(ctx, h)
	if err != nil {
		return nil, err
	}
	if class, err := a.str("activity"); err != nil {
		return nil, err
	} else if class != "" {
		e.ActivityClass = class
	}
	intent, err := a.intent()
	if err != nil {
		return nil, err
	}
	return effect(h.launcher.SelectApp(ctx, e, intent))
}

func actSubmit(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	query, err := a.str("query")
	if err != nil {
		return nil, err
	}
	cat, err := a.str("category")
	if err != nil {
		return nil, err
	}
	intent, err := a.intent()
	if err != nil {
		return nil, err
	}
	return effect(h.launcher.Submit(ctx, query, intent, cat))
}

func actToggleHidden(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	e, err := a.entry(ctx, h)
	if err != nil {
		return nil, err
	}
	intent, err := a.intent()
	if err != nil {
		return nil, err
	}
	res, err := h.launcher.ToggleHidden(ctx, e, intent)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"hidden":    res.Hidden,
		"set_empty": res.SetEmpty,
		"dialog":    res.Dialog.String(),
	}, nil
}

func actRenameApp(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	pkg, err := a.required("package")
	if err != nil {
		return nil, err
	}
	label, err := a.str("label")
	if err != nil {
		return nil, err
	}
	return map[string]any{}, h.launcher.RenameApp(ctx, pkg, label)
}

func actSetCategories(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	pkg, err := a.required("package")
	if err != nil {
		return nil, err
	}
	labels, err := a.strings("labels")
	if err != nil {
		return nil, err
	}
	return map[string]any{}, h.launcher.SetAppCategories(ctx, pkg, labels)
}

func actCategoryNames(ctx context.Context, h *Harness, _ args) (map[string]any, error) {
	names, err := h.launcher.CategoryNames(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"names": names}, nil
}

func actUninstall(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	e, err := a.entry(ctx, h)
	if err != nil {
		return nil, err
	}
	return map[string]any{}, h.launcher.Uninstall(ctx, e)
}

func actAssignSlot(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	slot, err := a.slot()
	if err != nil {
		return nil, err
	}
	e, err := a.entry(ctx, h)
	if err != nil {
		return nil, err
	}
	return effect(h.launcher.SelectApp(ctx, e, launcher.SlotIntent(slot)))
}

func actAssignCategory(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	slot, err := a.slot()
	if err != nil {
		return nil, err
	}
	name, err := a.str("category")
	if err != nil {
		return nil, err
	}
	return map[string]any{}, h.launcher.AssignCategory(ctx, slot, name)
}

func actClearSlot(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	slot, err := a.slot()
	if err != nil {
		return nil, err
	}
	return map[string]any{}, h.launcher.ClearSlot(ctx, slot)
}

func actRenameSlot(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	slot, err := a.slot()
	if err != nil {
		return nil, err
	}
	label, err := a.str("label")
	if err != nil {
		return nil, err
	}
	return map[string]any{}, h.launcher.RenameSlot(ctx, slot, label)
}

func actOpenSlot(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	slot, err := a.slot()
	if err != nil {
		return nil, err
	}
	return effect(h.launcher.OpenSlot(ctx, slot))
}

func actLongPressSlot(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	slot, err := a.slot()
	if err != nil {
		return nil, err
	}
	return effect(h.launcher.LongPressSlot(ctx, slot))
}

func actHome(ctx context.Context, h *Harness, _ args) (map[string]any, error) {
	home, err := h.launcher.Home(ctx)
	if err != nil {
		return nil, err
	}
	rendered := make([]string, 0, len(home))
	for _, s := range home {
		rendered = append(rendered, RenderHomeSlot(s))
	}
	return map[string]any{"slots": rendered}, nil
}

// RenderHomeSlot renders a home slot as "home-1=Maps", "home-2=[Work]" or
// "home-3=".
func RenderHomeSlot(s launcher.HomeSlot) string {
	if s.Kind == slots.KindCategory {
		return fmt.Sprintf("%s=[%s]", s.Slot, s.Category)
	}
	return fmt.Sprintf("%s=%s", s.Slot, s.Label)
}

func actGesture(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	name, err := a.required("gesture")
	if err != nil {
		return nil, err
	}
	g, err := gesture.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	return effect(h.launcher.Gesture(ctx, g))
}

func actCheckFunnel(ctx context.Context, h *Harness, _ args) (map[string]any, error) {
	d, err := h.launcher.CheckFunnel(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"dialog": d.String()}, nil
}

func actDialogShown(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	name, err := a.required("dialog")
	if err != nil {
		return nil, err
	}
	d, ok := funnel.ParseDialog(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown dialog %q", ErrBadArgs, name)
	}
	return map[string]any{}, h.launcher.DialogShown(ctx, d)
}

func actRateClicked(ctx context.Context, h *Harness, _ args) (map[string]any, error) {
	return map[string]any{}, h.launcher.RateClicked(ctx)
}

func actFunnelState(ctx context.Context, h *Harness, _ args) (map[string]any, error) {
	s, err := h.launcher.FunnelState(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"state": s.String()}, nil
}

func actSetPref(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	name, err := a.required("name")
	if err != nil {
		return nil, err
	}
	p := h.launcher.Prefs()
	switch name {
	case "home_apps":
		n, err := a.integer("value")
		if err != nil {
			return nil, err
		}
		return map[string]any{}, p.SetHomeAppsNum(ctx, n)
	case "swipe_left", "swipe_right":
		on, err := a.boolean("value", true)
		if err != nil {
			return nil, err
		}
		return map[string]any{}, p.SetSwipeEnabled(ctx, name == "swipe_left", on)
	case "swipe_down":
		v, err := a.required("value")
		if err != nil {
			return nil, err
		}
		return map[string]any{}, p.SetSwipeDownAction(ctx, v)
	case "daily_wallpaper":
		on, err := a.boolean("value", true)
		if err != nil {
			return nil, err
		}
		return map[string]any{}, h.launcher.SetDailyWallpaper(ctx, on)
	}
	return nil, fmt.Errorf("%w: unknown preference %q", ErrBadArgs, name)
}

var deviceOps = []string{"install", "remove", "fail_launch", "default_launcher", "profile_unavailable"}

func actDevice(_ context.Context, h *Harness, a args) (map[string]any, error) {
	op, err := a.required("op")
	if err != nil {
		return nil, err
	}
	if !slices.Contains(deviceOps, op) {
		return nil, fmt.Errorf("%w: unknown device op %q", ErrBadArgs, op)
	}
	profileArg, err := a.str("profile")
	if err != nil {
		return nil, err
	}
	profile := apps.Profile(profileArg)
	if profile == "" {
		profile = h.device.CurrentProfile()
	}
	on, err := a.boolean("value", true)
	if err != nil {
		return nil, err
	}

	switch op {
	case "default_launcher":
		h.device.SetDefaultLauncher(on)
		return map[string]any{}, nil
	case "profile_unavailable":
		return map[string]any{}, h.device.SetProfileUnavailable(profile, on)
	}

	pkg, err := a.required("package")
	if err != nil {
		return nil, err
	}
	switch op {
	case "install":
		label, err := a.str("label")
		if err != nil {
			return nil, err
		}
		system, err := a.boolean("system", false)
		if err != nil {
			return nil, err
		}
		return map[string]any{}, h.device.Install(profile, device.AppSpec{Label: label, Package: pkg, System: system})
	case "remove":
		return map[string]any{}, h.device.Remove(profile, pkg)
	default:
		h.device.FailLaunches(pkg, profile, on)
		return map[string]any{}, nil
	}
}

func actDefaultClock(ctx context.Context, h *Harness, _ args) (map[string]any, error) {
	bound, err := h.launcher.SetDefaultClockApp(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"bound": bound}, nil
}
