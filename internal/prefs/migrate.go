package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/store"
)

// currentPrefsVersion is the preference format this build writes.
const currentPrefsVersion = 1

// legacyRenameKey matches the bare package names older releases used as
// rename keys.
var legacyRenameKey = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*)+$`)

// Migrate upgrades kv to currentPrefsVersion. Each step runs in one batch
// together with the version bump, so a failed step leaves the store at its
// previous version.
func Migrate(ctx context.Context, kv store.KV, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	p := New(kv)

	version, err := p.getInt(ctx, KeyPrefsVersion, 0)
	if err != nil {
		return err
	}
	if version > currentPrefsVersion {
		return fmt.Errorf("preferences version %d is newer than supported %d", version, currentPrefsVersion)
	}

	migrations := []func(context.Context, *Prefs, *store.Batch) (int, error){
		migrateToV1,
	}
	for v := int(version); v < currentPrefsVersion; v++ {
		b := store.NewBatch()
		n, err := migrations[v](ctx, p, b)
		if err != nil {
			return fmt.Errorf("migrate preferences to v%d: %w", v+1, err)
		}
		b.Put(KeyPrefsVersion, store.Int(int64(v+1)))
		if err := kv.Apply(ctx, b); err != nil {
			return fmt.Errorf("migrate preferences to v%d: %w", v+1, err)
		}
		log.Info("preferences migrated", "version", v+1, "rewritten", n)
	}
	return nil
}

// migrateToV1 widens bare hidden packages to every profile and moves
// legacy rename labels under RENAME_.
func migrateToV1(ctx context.Context, p *Prefs, b *store.Batch) (int, error) {
	rewritten := 0

	members, err := p.getSet(ctx, KeyHiddenApps)
	if err != nil {
		return 0, err
	}
	changed := false
	canonical := make([]string, 0, len(members))
	for _, m := range members {
		if !strings.Contains(m, "|") {
			changed = true
		}
		canonical = append(canonical, apps.ParseIdentity(m).String())
	}
	if changed {
		b.Put(KeyHiddenApps, store.Set(canonical...))
		rewritten++
	}

	keys, err := p.kv.Keys(ctx, "")
	if err != nil {
		return 0, err
	}
	for _, k := range keys {
		if strings.HasPrefix(k, renamePrefix) || strings.HasPrefix(k, categoryPrefix) {
			continue
		}
		if !legacyRenameKey.MatchString(k) {
			continue
		}
		v, ok, err := p.kv.Get(ctx, k)
		if err != nil {
			return 0, err
		}
		if !ok || v.Kind != store.KindString {
			continue
		}
		if _, exists, err := p.kv.Get(ctx, RenameKey(k)); err != nil {
			return 0, err
		} else if !exists && v.Str != "" {
			b.Put(RenameKey(k), v)
		}
		b.Delete(k)
		rewritten++
	}
	return rewritten, nil
}
