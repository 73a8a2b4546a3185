package index

import (
	"context"

	"github.com/roach88/launchcore/internal/apps"
)

// Activity is one launchable activity descriptor reported by the platform.
type Activity struct {
	Label   string
	Package string
	Class   string
	System  bool
	New     bool
}

// Platform is the app-enumeration service the index consumes.
type Platform interface {
	// Profiles lists every user profile known to the platform.
	Profiles(ctx context.Context) ([]apps.Profile, error)

	// CurrentProfile is the profile the launcher itself runs under.
	CurrentProfile() apps.Profile

	// LaunchableActivities lists every launchable activity of a profile.
	LaunchableActivities(ctx context.Context, profile apps.Profile) ([]Activity, error)

	// PackageActivities lists the launchable activities of one package
	// under one profile. An uninstalled package yields none.
	PackageActivities(ctx context.Context, pkg string, profile apps.Profile) ([]Activity, error)
}

// ResolveProfile maps a stored profile string to a platform profile.
// Empty or unknown profiles resolve to the current profile.
func ResolveProfile(ctx context.Context, p Platform, stored apps.Profile) apps.Profile {
	if stored == "" || stored == apps.AnyProfile {
		return p.CurrentProfile()
	}
	profiles, err := p.Profiles(ctx)
	if err != nil {
		return p.CurrentProfile()
	}
	for _, known := range profiles {
		if known == stored {
			return stored
		}
	}
	return p.CurrentProfile()
}

// IsInstalled reports whether pkg has a launchable activity under profile.
func IsInstalled(ctx context.Context, p Platform, pkg string, profile apps.Profile) (bool, error) {
	if pkg == "" {
		return false, nil
	}
	acts, err := p.PackageActivities(ctx, pkg, ResolveProfile(ctx, p, profile))
	if err != nil {
		return false, err
	}
	return len(acts) > 0, nil
}
