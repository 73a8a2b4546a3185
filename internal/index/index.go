package index

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/prefs"
)

// Mode selects which slice of the app universe Build returns.
type Mode int

const (
	// ModeDefault excludes hidden apps and appends the sentinel entry.
	ModeDefault Mode = iota
	// ModeIncludeHidden returns every app, hidden or not.
	ModeIncludeHidden
	// ModeHiddenOnly returns only hidden apps.
	ModeHiddenOnly
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeIncludeHidden:
		return "include-hidden"
	case ModeHiddenOnly:
		return "hidden-only"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// maxConcurrentProfiles bounds parallel enumeration calls.
const maxConcurrentProfiles = 4

// Index builds app listings from a Platform and the stored preferences.
type Index struct {
	platform Platform
	prefs    *prefs.Prefs
	log      *slog.Logger
}

// New creates an Index. A nil logger uses slog.Default().
func New(platform Platform, p *prefs.Prefs, log *slog.Logger) *Index {
	if log == nil {
		log = slog.Default()
	}
	return &Index{platform: platform, prefs: p, log: log}
}

// Platform returns the platform the index enumerates.
func (ix *Index) Platform() Platform {
	return ix.platform
}

// Build enumerates the app universe in the requested mode.
//
// The returned slice is freshly allocated and never shared.
func (ix *Index) Build(ctx context.Context, mode Mode) ([]apps.Entry, error) {
	profiles, err := ix.platform.Profiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	renames, err := ix.prefs.RenameLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rename labels: %w", err)
	}
	hidden, err := ix.prefs.HiddenApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hidden apps: %w", err)
	}

	perProfile, err := ix.enumerate(ctx, profiles)
	if err != nil {
		return nil, err
	}

	seen := make(map[apps.Identity]bool)
	var out []apps.Entry
	for i, acts := range perProfile {
		profile := profiles[i]
		for _, a := range acts {
			if a.Package == "" {
				continue
			}
			e := apps.Entry{
				Label:         a.Label,
				Package:       a.Package,
				ActivityClass: a.Class,
				System:        a.System,
				New:           a.New,
				Profile:       profile,
			}
			if seen[e.Identity()] {
				continue
			}
			seen[e.Identity()] = true

			if label, ok := renames[e.Package]; ok {
				e.Label = label
			}

			isHidden := hidden.Contains(e.Identity())
			switch mode {
			case ModeDefault:
				if isHidden {
					continue
				}
			case ModeHiddenOnly:
				if !isHidden {
					continue
				}
			}
			out = append(out, e)
		}
	}

	sortEntries(out)

	if mode == ModeDefault {
		out = append(out, apps.Sentinel(ix.platform.CurrentProfile()))
	}
	ix.log.Debug("index built", "mode", mode, "profiles", len(profiles), "entries", len(out))
	return out, nil
}

// enumerate lists every profile concurrently, preserving profile order.
// Per-profile failures are logged and yield an empty list; only
// cancellation of ctx aborts the whole enumeration.
func (ix *Index) enumerate(ctx context.Context, profiles []apps.Profile) ([][]Activity, error) {
	results := make([][]Activity, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProfiles)
	for i, profile := range profiles {
		g.Go(func() error {
			acts, err := ix.platform.LaunchableActivities(gctx, profile)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				ix.log.Warn("profile enumeration failed",
					"profile", string(profile),
					"error", apps.NewEnumerationFailure(profile, err))
				return nil
			}
			results[i] = acts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("enumerate apps: %w", err)
	}
	return results, nil
}

// sortEntries orders entries by collated label, then package, then profile.
func sortEntries(entries []apps.Entry) {
	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	slices.SortStableFunc(entries, func(a, b apps.Entry) int {
		if c := col.CompareString(a.Label, b.Label); c != 0 {
			return c
		}
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}
		return strings.Compare(string(a.Profile), string(b.Profile))
	})
}
