package funnel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/launchcore/internal/prefs"
)

// Gate thresholds.
const (
	wallpaperAfter  = 10 * time.Minute
	reviewAfter     = time.Hour
	rateAfterDays   = 7
	shareAfterDays  = 14
	shareRepeatDays = 70
	eveningHour     = 16
)

// Clock supplies the current local time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock in the local time zone.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// LauncherStatus reports whether the launcher is the default home app.
type LauncherStatus interface {
	IsDefaultLauncher(ctx context.Context) bool
}

// Funnel evaluates and records engagement prompts.
type Funnel struct {
	prefs  *prefs.Prefs
	status LauncherStatus
	clock  Clock
	log    *slog.Logger
}

// New creates a Funnel. A nil clock uses SystemClock; a nil logger uses
// slog.Default().
func New(p *prefs.Prefs, status LauncherStatus, clock Clock, log *slog.Logger) *Funnel {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Funnel{prefs: p, status: status, clock: clock, log: log}
}

// State returns the stored funnel state.
func (f *Funnel) State(ctx context.Context) (State, error) {
	rec, err := f.prefs.Funnel(ctx)
	if err != nil {
		return StateStart, err
	}
	return f.parseState(rec.State), nil
}

func (f *Funnel) parseState(name string) State {
	s, ok := ParseState(name)
	if !ok {
		f.log.Warn("unknown funnel state, restarting", "state", name)
	}
	return s
}

// Check runs one funnel evaluation and returns the dialog to show, if any.
func (f *Funnel) Check(ctx context.Context) (Dialog, error) {
	now := f.clock.Now()
	rec, err := f.prefs.Funnel(ctx)
	if err != nil {
		return DialogNone, fmt.Errorf("load funnel: %w", err)
	}

	if rec.FirstOpen.IsZero() {
		if err := f.prefs.SetFirstOpenTime(ctx, now); err != nil {
			return DialogNone, err
		}
		rec.FirstOpen = now
	}

	if d := newYearDialog(rec, now); d != DialogNone {
		if err := f.prefs.SetShownOnDay(ctx, now.YearDay(), now.Year()); err != nil {
			return DialogNone, err
		}
		f.log.Debug("new year greeting", "dialog", d, "day", now.YearDay())
		return d, nil
	}

	var isDefault *bool
	defaultLauncher := func() bool {
		if isDefault == nil {
			v := f.status.IsDefaultLauncher(ctx)
			isDefault = &v
		}
		return *isDefault
	}

	state := f.parseState(rec.State)
	for {
		next, dialog := step(state, rec, now, defaultLauncher)
		if next == state {
			return dialog, nil
		}
		if next < state {
			return DialogNone, fmt.Errorf("funnel cannot move from %s to %s", state, next)
		}
		if err := f.prefs.SetUserState(ctx, next.String()); err != nil {
			return DialogNone, err
		}
		f.log.Debug("funnel advanced", "from", state, "to", next)
		state = next
	}
}

// newYearDialog returns the greeting due today, if not yet shown. A stored
// day without a year counts as shown.
func newYearDialog(rec prefs.FunnelRecord, now time.Time) Dialog {
	day := now.YearDay()
	if day != 1 && day != 32 {
		return DialogNone
	}
	if rec.ShownOnDayOfYear == day && (rec.ShownOnYear == 0 || rec.ShownOnYear == now.Year()) {
		return DialogNone
	}
	if day == 1 {
		return DialogNewYear
	}
	return DialogNewYear1
}

// step evaluates one state. It returns a later state to advance to, or the
// same state and the dialog (possibly none) to show.
func step(state State, rec prefs.FunnelRecord, now time.Time, isDefault func() bool) (State, Dialog) {
	switch state {
	case StateStart:
		if now.Sub(rec.FirstOpen) >= wallpaperAfter {
			return StateWallpaper, DialogNone
		}

	case StateWallpaper:
		if rec.WallpaperMsgShown || rec.DailyWallpaper {
			return StateReview, DialogNone
		}
		if isDefault() {
			return state, DialogWallpaper
		}

	case StateReview:
		if rec.RateClicked {
			return StateShare, DialogNone
		}
		if isDefault() && now.Sub(rec.FirstOpen) >= reviewAfter {
			return state, DialogReview
		}

	case StateRate:
		if rec.RateClicked {
			return StateShare, DialogNone
		}
		if isDefault() && calendarDaysSince(rec.FirstOpen, now) >= rateAfterDays && now.Hour() >= eveningHour {
			return state, DialogRate
		}

	case StateShare:
		if isDefault() &&
			now.Sub(rec.FirstOpen) >= shareAfterDays*24*time.Hour &&
			(rec.ShareShown.IsZero() || calendarDaysSince(rec.ShareShown, now) >= shareRepeatDays) &&
			now.Hour() >= eveningHour {
			return state, DialogShare
		}
	}
	return state, DialogNone
}

// calendarDaysSince counts midnights between then and now in now's zone.
func calendarDaysSince(then, now time.Time) int {
	then = then.In(now.Location())
	a := time.Date(then.Year(), then.Month(), then.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// Shown records that the caller displayed d.
func (f *Funnel) Shown(ctx context.Context, d Dialog) error {
	switch d {
	case DialogWallpaper:
		return f.prefs.SetWallpaperMsgShown(ctx, true)
	case DialogShare:
		return f.prefs.SetShareShownTime(ctx, f.clock.Now())
	}
	return nil
}

// RateClicked records that the user followed a review or rate prompt.
func (f *Funnel) RateClicked(ctx context.Context) error {
	return f.prefs.SetRateClicked(ctx, true)
}

// SetDailyWallpaper toggles the daily wallpaper feature.
func (f *Funnel) SetDailyWallpaper(ctx context.Context, on bool) error {
	return f.prefs.SetDailyWallpaper(ctx, on)
}

// DailyWallpaper reports whether daily wallpaper is enabled.
func (f *Funnel) DailyWallpaper(ctx context.Context) (bool, error) {
	rec, err := f.prefs.Funnel(ctx)
	return rec.DailyWallpaper, err
}
