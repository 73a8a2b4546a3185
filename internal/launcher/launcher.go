package launcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/category"
	"github.com/roach88/launchcore/internal/funnel"
	"github.com/roach88/launchcore/internal/index"
	"github.com/roach88/launchcore/internal/prefs"
	"github.com/roach88/launchcore/internal/search"
	"github.com/roach88/launchcore/internal/slots"
)

// Options configures a Launcher. Zero values pick defaults.
type Options struct {
	// BangURL prefixes bang searches. Empty uses search.DefaultBangURL.
	BangURL string
	// Categories lists configured category names in display order.
	Categories []string
	// ClockPackages are tried in order by SetDefaultClockApp.
	ClockPackages []string

	Clock   funnel.Clock
	Tickets index.TicketSource
	Logger  *slog.Logger
}

// Launcher is the UI-facing facade.
type Launcher struct {
	device    Device
	prefs     *prefs.Prefs
	index     *index.Index
	refresher *index.Refresher
	slots     *slots.Model
	funnel    *funnel.Funnel
	opts      Options
	log       *slog.Logger
}

// New wires a Launcher around device and p.
func New(device Device, p *prefs.Prefs, opts Options) *Launcher {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.BangURL == "" {
		opts.BangURL = search.DefaultBangURL
	}
	ix := index.New(device, p, log)
	return &Launcher{
		device:    device,
		prefs:     p,
		index:     ix,
		refresher: index.NewRefresher(ix, opts.Tickets, log),
		slots:     slots.New(p, device, log),
		funnel:    funnel.New(p, device, opts.Clock, log),
		opts:      opts,
		log:       log,
	}
}

// Prefs returns the preference store the launcher writes to.
func (l *Launcher) Prefs() *prefs.Prefs { return l.prefs }

// Listing is one rendered drawer state: the entries for a query, intent and
// category, all taken from a single snapshot.
type Listing struct {
	Ticket   string
	Intent   Intent
	Category string
	Query    string
	Entries  []apps.Entry

	// AutoLaunch is set when the UI should launch the only match without
	// waiting for submit.
	AutoLaunch bool

	corpus []apps.Entry
}

// Refresh starts a background rebuild for intent. Only the most recently
// issued refresh publishes.
func (l *Launcher) Refresh(ctx context.Context, intent Intent) *index.Pending {
	return l.refresher.Refresh(ctx, intent.mode())
}

// Snapshot returns the last published index snapshot, or nil.
func (l *Launcher) Snapshot() *index.Snapshot {
	return l.refresher.Snapshot()
}

// GetFilteredApps rebuilds the index for intent and filters it by category
// and query. Concurrent callers each get a listing; an overtaken rebuild
// is replaced by the newer one.
func (l *Launcher) GetFilteredApps(ctx context.Context, query string, intent Intent, cat string) (Listing, error) {
	snap, err := l.refresher.Listing(ctx, intent.mode())
	if err != nil {
		return Listing{}, err
	}

	corpus := snap.Entries()
	if cat != "" {
		cats, err := l.prefs.Categories(ctx)
		if err != nil {
			return Listing{}, err
		}
		corpus = category.View(corpus, category.Map(cats), cat)
	}
	results := search.Filter(corpus, query)
	return Listing{
		Ticket:     snap.Ticket,
		Intent:     intent,
		Category:   cat,
		Query:      query,
		Entries:    results,
		AutoLaunch: intent.Kind() == IntentLaunch && search.ShouldAutoLaunch(query, results),
		corpus:     corpus,
	}, nil
}

// SelectApp handles a tap on e in a drawer opened for intent.
func (l *Launcher) SelectApp(ctx context.Context, e apps.Entry, intent Intent) (Effect, error) {
	if e.IsSentinel() {
		return Effect{}, nil
	}
	switch intent.Kind() {
	case IntentSlot:
		if err := l.slots.Assign(ctx, intent.Slot(), e); err != nil {
			return Effect{}, err
		}
		l.log.Info("slot assigned", "slot", intent.Slot(), "package", e.Package, "profile", e.Profile)
		return Effect{Kind: EffectAssigned, Slot: intent.Slot()}, nil
	default:
		return l.launch(ctx, e.Package, e.ActivityClass, e.Profile)
	}
}

// Submit handles the search field's submit action.
func (l *Launcher) Submit(ctx context.Context, query string, intent Intent, cat string) (Effect, error) {
	listing, err := l.GetFilteredApps(ctx, query, intent, cat)
	if err != nil {
		return Effect{}, err
	}
	action := search.Submit(query, listing.Entries, listing.corpus, l.opts.BangURL)
	switch action.Kind {
	case search.ActionBangSearch:
		if err := l.device.OpenURL(ctx, action.URL); err != nil {
			return Effect{}, fmt.Errorf("open %s: %w", action.URL, err)
		}
		return opened(action.URL), nil
	case search.ActionWebSearch:
		if err := l.device.WebSearch(ctx, action.Query); err != nil {
			return Effect{}, fmt.Errorf("web search: %w", err)
		}
		eff := opened("web-search " + action.Query)
		eff.Suggestion = action.Suggestion
		return eff, nil
	default:
		return l.SelectApp(ctx, action.Entry, intent)
	}
}

// CheckFunnel evaluates the engagement funnel on a home-screen visit.
func (l *Launcher) CheckFunnel(ctx context.Context) (funnel.Dialog, error) {
	return l.funnel.Check(ctx)
}

// DialogShown acknowledges that d was displayed.
func (l *Launcher) DialogShown(ctx context.Context, d funnel.Dialog) error {
	return l.funnel.Shown(ctx, d)
}

// RateClicked records that the user followed the rate prompt.
func (l *Launcher) RateClicked(ctx context.Context) error {
	return l.funnel.RateClicked(ctx)
}

// FunnelState returns the stored funnel state.
func (l *Launcher) FunnelState(ctx context.Context) (funnel.State, error) {
	return l.funnel.State(ctx)
}

// SetDailyWallpaper toggles the daily wallpaper setting.
func (l *Launcher) SetDailyWallpaper(ctx context.Context, on bool) error {
	return l.funnel.SetDailyWallpaper(ctx, on)
}

// Find returns the indexed entry for pkg under profile, hidden or not. An
// empty or unknown profile means the current one.
func (l *Launcher) Find(ctx context.Context, pkg string, profile apps.Profile) (apps.Entry, error) {
	entries, err := l.index.Build(ctx, index.ModeIncludeHidden)
	if err != nil {
		return apps.Entry{}, err
	}
	profile = index.ResolveProfile(ctx, l.device, profile)
	for _, e := range entries {
		if e.Package == pkg && e.Profile == profile {
			return e, nil
		}
	}
	return apps.Entry{}, apps.NewNotFound(pkg, profile)
}
