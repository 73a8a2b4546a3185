package prefs

import (
	"context"
	"time"

	"github.com/roach88/launchcore/internal/store"
)

// FunnelRecord is the persisted engagement funnel state. Times are stored
// as Unix milliseconds; a zero time means unset.
type FunnelRecord struct {
	State             string
	FirstOpen         time.Time
	WallpaperMsgShown bool
	RateClicked       bool
	ShareShown        time.Time
	ShownOnDayOfYear  int
	ShownOnYear       int
	DailyWallpaper    bool
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// Funnel loads the funnel record. USER_STATE defaults to "START".
func (p *Prefs) Funnel(ctx context.Context) (FunnelRecord, error) {
	var r FunnelRecord
	var err error
	if r.State, err = p.getString(ctx, KeyUserState, "START"); err != nil {
		return r, err
	}
	first, err := p.getInt(ctx, KeyFirstOpenTime, 0)
	if err != nil {
		return r, err
	}
	r.FirstOpen = fromMillis(first)
	if r.WallpaperMsgShown, err = p.getBool(ctx, KeyWallpaperMsgShown, false); err != nil {
		return r, err
	}
	if r.RateClicked, err = p.getBool(ctx, KeyRateClicked, false); err != nil {
		return r, err
	}
	share, err := p.getInt(ctx, KeyShareShownTime, 0)
	if err != nil {
		return r, err
	}
	r.ShareShown = fromMillis(share)
	day, err := p.getInt(ctx, KeyShownOnDayOfYear, 0)
	if err != nil {
		return r, err
	}
	r.ShownOnDayOfYear = int(day)
	year, err := p.getInt(ctx, KeyShownOnYear, 0)
	if err != nil {
		return r, err
	}
	r.ShownOnYear = int(year)
	if r.DailyWallpaper, err = p.getBool(ctx, KeyDailyWallpaper, false); err != nil {
		return r, err
	}
	return r, nil
}

// SetUserState stores the funnel state name.
func (p *Prefs) SetUserState(ctx context.Context, state string) error {
	return p.put(ctx, KeyUserState, store.String(state))
}

// SetFirstOpenTime stores the first-open instant.
func (p *Prefs) SetFirstOpenTime(ctx context.Context, t time.Time) error {
	return p.put(ctx, KeyFirstOpenTime, store.Int(toMillis(t)))
}

// SetWallpaperMsgShown records that the wallpaper prompt was shown.
func (p *Prefs) SetWallpaperMsgShown(ctx context.Context, v bool) error {
	return p.put(ctx, KeyWallpaperMsgShown, store.Bool(v))
}

// SetRateClicked records that the user accepted the review prompt.
func (p *Prefs) SetRateClicked(ctx context.Context, v bool) error {
	return p.put(ctx, KeyRateClicked, store.Bool(v))
}

// SetShareShownTime stores when the share prompt was last shown.
func (p *Prefs) SetShareShownTime(ctx context.Context, t time.Time) error {
	return p.put(ctx, KeyShareShownTime, store.Int(toMillis(t)))
}

// SetShownOnDay records the day of year (and year) a New Year greeting
// was shown.
func (p *Prefs) SetShownOnDay(ctx context.Context, day, year int) error {
	b := store.NewBatch().
		Put(KeyShownOnDayOfYear, store.Int(int64(day))).
		Put(KeyShownOnYear, store.Int(int64(year)))
	return p.kv.Apply(ctx, b)
}

// SetDailyWallpaper toggles the daily wallpaper feature.
func (p *Prefs) SetDailyWallpaper(ctx context.Context, v bool) error {
	return p.put(ctx, KeyDailyWallpaper, store.Bool(v))
}
