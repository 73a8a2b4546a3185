package launcher

import (
	"context"
	"fmt"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/index"
)

// launch starts pkg. An empty class resolves to the last launchable
// activity of the package. A failed start is retried once under the
// current profile.
func (l *Launcher) launch(ctx context.Context, pkg, class string, stored apps.Profile) (Effect, error) {
	profile := index.ResolveProfile(ctx, l.device, stored)

	if class == "" {
		acts, err := l.device.PackageActivities(ctx, pkg, profile)
		if err != nil {
			return Effect{}, fmt.Errorf("resolve %s: %w", pkg, err)
		}
		if len(acts) == 0 {
			l.log.Warn("launch target not found", "package", pkg, "profile", profile)
			return Effect{}, apps.NewNotFound(pkg, profile)
		}
		class = acts[len(acts)-1].Class
	}

	err := l.device.StartActivity(ctx, pkg, class, profile)
	if err == nil {
		return launched(pkg, class, profile), nil
	}

	current := l.device.CurrentProfile()
	l.log.Warn("launch failed, retrying under current profile",
		"package", pkg, "profile", profile, "current", current, "error", err)
	if err := l.device.StartActivity(ctx, pkg, class, current); err != nil {
		return Effect{}, apps.NewLaunchFailure(pkg, profile, err)
	}
	return launched(pkg, class, current), nil
}

// openSystem opens a system target.
func (l *Launcher) openSystem(ctx context.Context, target apps.SystemTarget) (Effect, error) {
	if err := l.device.OpenSystem(ctx, target); err != nil {
		return Effect{}, fmt.Errorf("open %s: %w", target, err)
	}
	return opened("system:" + string(target)), nil
}
