package launcher

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/category"
	"github.com/roach88/launchcore/internal/funnel"
	"github.com/roach88/launchcore/internal/index"
)

// HideResult reports the outcome of ToggleHidden.
type HideResult struct {
	// Hidden is the entry's visibility after the toggle.
	Hidden bool
	// SetEmpty is set when the hidden set became empty while browsing
	// hidden apps; the UI leaves that view.
	SetEmpty bool
	// Dialog is DialogHidden the first time the user hides anything.
	Dialog funnel.Dialog
}

// ToggleHidden hides e, or unhides it when browsing hidden apps.
func (l *Launcher) ToggleHidden(ctx context.Context, e apps.Entry, intent Intent) (HideResult, error) {
	if e.IsSentinel() || e.Package == "" {
		return HideResult{}, apps.NewInvalid("cannot hide an empty app")
	}
	hidden, err := l.prefs.HiddenApps(ctx)
	if err != nil {
		return HideResult{}, err
	}

	var res HideResult
	id := e.Identity()
	if intent.Kind() == IntentHiddenApps {
		hidden.Unhide(id)
		res.SetEmpty = hidden.Len() == 0
	} else {
		hidden.Hide(id)
		res.Hidden = true
	}
	if err := l.prefs.SetHiddenApps(ctx, hidden); err != nil {
		return HideResult{}, err
	}
	l.log.Info("app visibility changed", "identity", id.String(), "hidden", res.Hidden)

	first, err := l.prefs.FirstHide(ctx)
	if err != nil {
		return HideResult{}, err
	}
	if first {
		if err := l.prefs.SetFirstHide(ctx, false); err != nil {
			return HideResult{}, err
		}
		res.Dialog = funnel.DialogHidden
	}
	return res, nil
}

// RenameApp sets the drawer label of pkg. A blank label restores the
// platform label.
func (l *Launcher) RenameApp(ctx context.Context, pkg, label string) error {
	if pkg == "" {
		return apps.NewInvalid("cannot rename an empty app")
	}
	return l.prefs.SetRenameLabel(ctx, pkg, label)
}

// SetAppCategories replaces the category labels of pkg. Duplicates are
// dropped; an empty list removes the package from every category.
func (l *Launcher) SetAppCategories(ctx context.Context, pkg string, labels []string) error {
	if pkg == "" {
		return apps.NewInvalid("cannot categorise an empty app")
	}
	var clean []string
	for _, lb := range labels {
		lb = strings.TrimSpace(lb)
		if err := category.ValidateLabel(lb); err != nil {
			return err
		}
		if !slices.Contains(clean, lb) {
			clean = append(clean, lb)
		}
	}
	return l.prefs.SetAppCategories(ctx, pkg, clean)
}

// CategoryNames returns the views offered by the drawer.
func (l *Launcher) CategoryNames(ctx context.Context) ([]string, error) {
	cats, err := l.prefs.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return category.Names(category.Map(cats), l.opts.Categories), nil
}

// Uninstall requests removal of e. System apps are protected.
func (l *Launcher) Uninstall(ctx context.Context, e apps.Entry) error {
	if e.IsSentinel() || e.Package == "" {
		return apps.NewInvalid("cannot uninstall an empty app")
	}
	system := e.System
	if !system {
		acts, err := l.device.PackageActivities(ctx, e.Package, e.Profile)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", e.Package, err)
		}
		system = slices.ContainsFunc(acts, func(a index.Activity) bool { return a.System })
	}
	if system {
		return apps.NewProtected(e.Package, "system app cannot be deleted")
	}
	if err := l.device.Uninstall(ctx, e.Package, e.Profile); err != nil {
		return fmt.Errorf("uninstall %s: %w", e.Package, err)
	}
	l.log.Info("app uninstalled", "package", e.Package, "profile", e.Profile)
	return nil
}
