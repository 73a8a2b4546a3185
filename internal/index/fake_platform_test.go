package index

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/launchcore/internal/apps"
)

// fakePlatform is a scripted Platform for index tests.
type fakePlatform struct {
	mu       sync.Mutex
	profiles []apps.Profile
	current  apps.Profile
	apps     map[apps.Profile][]Activity
	failing  map[apps.Profile]bool

	// gate, when set, is consulted before every enumeration call.
	gate func(ctx context.Context) error
}

func newFakePlatform(current apps.Profile, profiles ...apps.Profile) *fakePlatform {
	return &fakePlatform{
		profiles: profiles,
		current:  current,
		apps:     make(map[apps.Profile][]Activity),
		failing:  make(map[apps.Profile]bool),
	}
}

func (f *fakePlatform) install(profile apps.Profile, acts ...Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apps[profile] = append(f.apps[profile], acts...)
}

func (f *fakePlatform) Profiles(context.Context) ([]apps.Profile, error) {
	return f.profiles, nil
}

func (f *fakePlatform) CurrentProfile() apps.Profile {
	return f.current
}

func (f *fakePlatform) LaunchableActivities(ctx context.Context, profile apps.Profile) ([]Activity, error) {
	if f.gate != nil {
		if err := f.gate(ctx); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[profile] {
		return nil, errors.New("profile locked")
	}
	return append([]Activity(nil), f.apps[profile]...), nil
}

func (f *fakePlatform) PackageActivities(_ context.Context, pkg string, profile apps.Profile) ([]Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Activity
	for _, a := range f.apps[profile] {
		if a.Package == pkg {
			out = append(out, a)
		}
	}
	return out, nil
}
