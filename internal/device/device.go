package device

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/index"
)

// Errors returned by the simulated platform.
var (
	ErrProfileUnavailable = errors.New("profile unavailable")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrLaunchRejected     = errors.New("launch rejected")
	ErrNotInstalled       = errors.New("package not installed")
)

// EventKind classifies a journal event.
type EventKind string

const (
	EventLaunch    EventKind = "launch"
	EventURL       EventKind = "open-url"
	EventWebSearch EventKind = "web-search"
	EventSystem    EventKind = "system"
	EventUninstall EventKind = "uninstall"
)

// Event is one externally visible action the device performed.
type Event struct {
	Kind    EventKind
	Package string
	Class   string
	Profile apps.Profile
	Detail  string
}

func (e Event) String() string {
	switch e.Kind {
	case EventLaunch:
		return fmt.Sprintf("launch %s/%s as %s", e.Package, e.Class, e.Profile)
	case EventUninstall:
		return fmt.Sprintf("uninstall %s as %s", e.Package, e.Profile)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Detail)
	}
}

type profileState struct {
	id          apps.Profile
	unavailable bool
	apps        []AppSpec
}

// Device is an in-memory platform built from a Catalog. It implements
// index.Platform and records every external action in a journal.
//
// Thread-safety: all methods are safe for concurrent use.
type Device struct {
	mu              sync.Mutex
	current         apps.Profile
	profiles        []*profileState
	defaultLauncher bool
	failures        map[apps.Identity]bool
	journal         []Event
}

var _ index.Platform = (*Device)(nil)

// New creates a device from a validated catalog.
func New(c *Catalog) *Device {
	d := &Device{
		current:         apps.Profile(c.CurrentProfile),
		defaultLauncher: c.DefaultLauncher,
		failures:        make(map[apps.Identity]bool),
	}
	for _, p := range c.Profiles {
		d.profiles = append(d.profiles, &profileState{
			id:          apps.Profile(p.ID),
			unavailable: p.Unavailable,
			apps:        slices.Clone(p.Apps),
		})
	}
	for _, f := range c.LaunchFailures {
		d.failures[apps.Identity{Package: f.Package, Profile: apps.Profile(f.Profile)}] = true
	}
	return d
}

func (d *Device) profile(id apps.Profile) *profileState {
	for _, p := range d.profiles {
		if p.id == id {
			return p
		}
	}
	return nil
}

func activitiesOf(a AppSpec) []index.Activity {
	classes := a.Activities
	if len(classes) == 0 {
		classes = []string{a.Package + ".MainActivity"}
	}
	out := make([]index.Activity, 0, len(classes))
	for _, c := range classes {
		out = append(out, index.Activity{
			Label:   a.Label,
			Package: a.Package,
			Class:   c,
			System:  a.System,
			New:     a.New,
		})
	}
	return out
}

// Profiles lists the device profiles in catalog order.
func (d *Device) Profiles(ctx context.Context) ([]apps.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]apps.Profile, 0, len(d.profiles))
	for _, p := range d.profiles {
		out = append(out, p.id)
	}
	return out, nil
}

// CurrentProfile returns the profile the launcher runs under.
func (d *Device) CurrentProfile() apps.Profile {
	return d.current
}

// LaunchableActivities lists every activity installed under profile.
func (d *Device) LaunchableActivities(ctx context.Context, profile apps.Profile) ([]index.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.profile(profile)
	if p == nil {
		return nil, fmt.Errorf("profile %s: %w", profile, ErrProfileUnavailable)
	}
	if p.unavailable {
		return nil, fmt.Errorf("profile %s: %w", profile, ErrProfileUnavailable)
	}
	var out []index.Activity
	for _, a := range p.apps {
		out = append(out, activitiesOf(a)...)
	}
	return out, nil
}

// PackageActivities lists the activities of pkg under profile.
func (d *Device) PackageActivities(ctx context.Context, pkg string, profile apps.Profile) ([]index.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.profile(profile)
	if p == nil || p.unavailable {
		return nil, nil
	}
	for _, a := range p.apps {
		if a.Package == pkg {
			return activitiesOf(a), nil
		}
	}
	return nil, nil
}

// IsDefaultLauncher reports whether the launcher is the default home app.
func (d *Device) IsDefaultLauncher(context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.defaultLauncher
}

// SetDefaultLauncher changes the default home app flag.
func (d *Device) SetDefaultLauncher(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defaultLauncher = v
}

// Install adds or replaces a package under profile.
func (d *Device) Install(profile apps.Profile, a AppSpec) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.profile(profile)
	if p == nil {
		return fmt.Errorf("profile %s: %w", profile, ErrProfileUnavailable)
	}
	p.apps = slices.DeleteFunc(p.apps, func(x AppSpec) bool { return x.Package == a.Package })
	p.apps = append(p.apps, a)
	return nil
}

// Remove deletes a package from profile without journaling it.
func (d *Device) Remove(profile apps.Profile, pkg string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.profile(profile)
	if p == nil {
		return fmt.Errorf("profile %s: %w", profile, ErrProfileUnavailable)
	}
	n := len(p.apps)
	p.apps = slices.DeleteFunc(p.apps, func(x AppSpec) bool { return x.Package == pkg })
	if len(p.apps) == n {
		return fmt.Errorf("%s: %w", pkg, ErrNotInstalled)
	}
	return nil
}

// SetProfileUnavailable toggles enumeration failure for a profile.
func (d *Device) SetProfileUnavailable(profile apps.Profile, v bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.profile(profile)
	if p == nil {
		return fmt.Errorf("profile %s: %w", profile, ErrProfileUnavailable)
	}
	p.unavailable = v
	return nil
}

// FailLaunches makes launches of pkg under profile fail (or succeed again).
func (d *Device) FailLaunches(pkg string, profile apps.Profile, fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := apps.Identity{Package: pkg, Profile: profile}
	if fail {
		d.failures[id] = true
	} else {
		delete(d.failures, id)
	}
}

// StartActivity launches class of pkg under profile.
func (d *Device) StartActivity(ctx context.Context, pkg, class string, profile apps.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failures[apps.Identity{Package: pkg, Profile: profile}] {
		return fmt.Errorf("start %s as %s: %w", pkg, profile, ErrLaunchRejected)
	}
	p := d.profile(profile)
	if p == nil || p.unavailable {
		return fmt.Errorf("start %s as %s: %w", pkg, profile, ErrProfileUnavailable)
	}
	idx := slices.IndexFunc(p.apps, func(a AppSpec) bool { return a.Package == pkg })
	if idx < 0 {
		return fmt.Errorf("start %s as %s: %w", pkg, profile, ErrNotInstalled)
	}
	found := false
	for _, a := range activitiesOf(p.apps[idx]) {
		if a.Class == class {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("start %s/%s: %w", pkg, class, ErrActivityNotFound)
	}

	d.journal = append(d.journal, Event{Kind: EventLaunch, Package: pkg, Class: class, Profile: profile})
	return nil
}

// Uninstall removes pkg from profile and journals the request.
func (d *Device) Uninstall(ctx context.Context, pkg string, profile apps.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.Remove(profile, pkg); err != nil {
		return err
	}
	d.record(Event{Kind: EventUninstall, Package: pkg, Profile: profile})
	return nil
}

// OpenURL opens url in the browser.
func (d *Device) OpenURL(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record(Event{Kind: EventURL, Detail: url})
	return nil
}

// WebSearch runs the platform web search for query.
func (d *Device) WebSearch(ctx context.Context, query string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record(Event{Kind: EventWebSearch, Detail: query})
	return nil
}

// OpenSystem opens a platform surface such as the camera or dialer.
func (d *Device) OpenSystem(ctx context.Context, target apps.SystemTarget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record(Event{Kind: EventSystem, Detail: string(target)})
	return nil
}

func (d *Device) record(e Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.journal = append(d.journal, e)
}

// Journal returns a copy of every recorded event.
func (d *Device) Journal() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.journal)
}

// DrainJournal returns the recorded events and clears the journal.
func (d *Device) DrainJournal() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.journal
	d.journal = nil
	return out
}

// Describe renders the installed apps, one "profile package label" line
// each, for diagnostics.
func (d *Device) Describe() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	for _, p := range d.profiles {
		for _, a := range p.apps {
			fmt.Fprintf(&b, "%s %s %s\n", p.id, a.Package, a.Label)
		}
	}
	return b.String()
}
