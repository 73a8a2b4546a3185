package prefs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/store"
)

// Prefs is the typed view over a store.KV.
type Prefs struct {
	kv store.KV
}

// New wraps kv without migrating it. Use Load for stores that may hold
// legacy formats.
func New(kv store.KV) *Prefs {
	return &Prefs{kv: kv}
}

// Load migrates kv to the current format and wraps it.
func Load(ctx context.Context, kv store.KV, log *slog.Logger) (*Prefs, error) {
	if err := Migrate(ctx, kv, log); err != nil {
		return nil, err
	}
	return New(kv), nil
}

func (p *Prefs) get(ctx context.Context, key string, kind store.Kind) (store.Value, bool, error) {
	v, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		return store.Value{}, false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return store.Value{}, false, nil
	}
	if v.Kind != kind {
		return store.Value{}, false, fmt.Errorf("read %s: holds %s, want %s", key, v.Kind, kind)
	}
	return v, true, nil
}

func (p *Prefs) getString(ctx context.Context, key, def string) (string, error) {
	v, ok, err := p.get(ctx, key, store.KindString)
	if err != nil || !ok {
		return def, err
	}
	return v.Str, nil
}

func (p *Prefs) getInt(ctx context.Context, key string, def int64) (int64, error) {
	v, ok, err := p.get(ctx, key, store.KindInt)
	if err != nil || !ok {
		return def, err
	}
	return v.Int, nil
}

func (p *Prefs) getBool(ctx context.Context, key string, def bool) (bool, error) {
	v, ok, err := p.get(ctx, key, store.KindBool)
	if err != nil || !ok {
		return def, err
	}
	return v.Bool, nil
}

func (p *Prefs) getSet(ctx context.Context, key string) ([]string, error) {
	v, ok, err := p.get(ctx, key, store.KindSet)
	if err != nil || !ok {
		return nil, err
	}
	return v.Set, nil
}

// Raw returns the stored value of key in its natural Go form: string,
// int64, bool or []string.
func (p *Prefs) Raw(ctx context.Context, key string) (any, bool, error) {
	v, ok, err := p.kv.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	switch v.Kind {
	case store.KindString:
		return v.Str, true, nil
	case store.KindInt:
		return v.Int, true, nil
	case store.KindBool:
		return v.Bool, true, nil
	default:
		return v.Set, true, nil
	}
}

// Dump returns every stored key with its Raw value.
func (p *Prefs) Dump(ctx context.Context) (map[string]any, error) {
	keys, err := p.kv.Keys(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		v, ok, err := p.Raw(ctx, k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

func (p *Prefs) put(ctx context.Context, key string, v store.Value) error {
	if err := p.kv.Apply(ctx, store.NewBatch().Put(key, v)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Home layout settings.

// HomeAppsNum returns how many home slots are visible (default 4).
func (p *Prefs) HomeAppsNum(ctx context.Context) (int, error) {
	n, err := p.getInt(ctx, KeyHomeAppsNum, 4)
	return int(n), err
}

// SetHomeAppsNum stores the visible home slot count.
func (p *Prefs) SetHomeAppsNum(ctx context.Context, n int) error {
	if n < 0 || n > 8 {
		return apps.NewInvalid("home apps count %d out of range 0..8", n)
	}
	return p.put(ctx, KeyHomeAppsNum, store.Int(int64(n)))
}

// SeedHomeAppsNum stores n only when no count has been stored yet. It
// reports whether it wrote.
func (p *Prefs) SeedHomeAppsNum(ctx context.Context, n int) (bool, error) {
	_, ok, err := p.kv.Get(ctx, KeyHomeAppsNum)
	if err != nil || ok {
		return false, err
	}
	return true, p.SetHomeAppsNum(ctx, n)
}

// SwipeEnabled reports whether the left (or right) swipe gesture is active.
func (p *Prefs) SwipeEnabled(ctx context.Context, left bool) (bool, error) {
	if left {
		return p.getBool(ctx, KeySwipeLeftEnabled, true)
	}
	return p.getBool(ctx, KeySwipeRightEnabled, true)
}

// SetSwipeEnabled toggles the left (or right) swipe gesture.
func (p *Prefs) SetSwipeEnabled(ctx context.Context, left, enabled bool) error {
	key := KeySwipeRightEnabled
	if left {
		key = KeySwipeLeftEnabled
	}
	return p.put(ctx, key, store.Bool(enabled))
}

// Swipe-down behaviours.
const (
	SwipeDownNotifications = "notifications"
	SwipeDownSearch        = "search"
)

// SwipeDownAction returns SwipeDownNotifications (default) or
// SwipeDownSearch.
func (p *Prefs) SwipeDownAction(ctx context.Context) (string, error) {
	return p.getString(ctx, KeySwipeDownAction, SwipeDownNotifications)
}

// SetSwipeDownAction stores the swipe-down behaviour.
func (p *Prefs) SetSwipeDownAction(ctx context.Context, action string) error {
	if action != SwipeDownNotifications && action != SwipeDownSearch {
		return apps.NewInvalid("unknown swipe down action %q", action)
	}
	return p.put(ctx, KeySwipeDownAction, store.String(action))
}
