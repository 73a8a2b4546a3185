package launcher

import (
	"context"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/index"
)

// Device is the platform surface the launcher drives.
type Device interface {
	index.Platform

	IsDefaultLauncher(ctx context.Context) bool
	StartActivity(ctx context.Context, pkg, class string, profile apps.Profile) error
	Uninstall(ctx context.Context, pkg string, profile apps.Profile) error
	OpenURL(ctx context.Context, url string) error
	WebSearch(ctx context.Context, query string) error
	OpenSystem(ctx context.Context, target apps.SystemTarget) error
}
