package prefs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/store"
)

func newTestPrefs(t *testing.T) (*Prefs, store.KV) {
	t.Helper()
	kv := store.NewMemory()
	return New(kv), kv
}

func TestSlot_PutAndRead(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()

	rec := SlotRecord{Label: "Maps", Package: "com.maps", Profile: "UserHandle{0}", Activity: "com.maps.Main"}
	require.NoError(t, p.PutSlot(ctx, apps.SlotHome2, rec))

	got, err := p.Slot(ctx, apps.SlotHome2)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	other, err := p.Slot(ctx, apps.SlotHome3)
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestSlot_PutReplacesAllFields(t *testing.T) {
	p, kv := newTestPrefs(t)
	ctx := t.Context()

	require.NoError(t, p.PutSlot(ctx, apps.SlotHome1, SlotRecord{Label: "Maps", Package: "com.maps", Profile: "u0"}))
	require.NoError(t, p.PutSlot(ctx, apps.SlotHome1, SlotRecord{Category: "Work"}))

	got, err := p.Slot(ctx, apps.SlotHome1)
	require.NoError(t, err)
	assert.Equal(t, SlotRecord{Category: "Work"}, got)

	_, found, err := kv.Get(ctx, "APP_PACKAGE_1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSlot_CategoryOnlyOnHome(t *testing.T) {
	p, _ := newTestPrefs(t)
	err := p.PutSlot(t.Context(), apps.SlotClock, SlotRecord{Category: "Work"})
	assert.Error(t, err)
}

func TestSlot_LegacyKeyNames(t *testing.T) {
	p, kv := newTestPrefs(t)
	ctx := t.Context()

	require.NoError(t, p.PutSlot(ctx, apps.SlotSwipeLeft, SlotRecord{Label: "Cam", Package: "com.cam", Profile: "u0", Activity: "com.cam.A"}))
	require.NoError(t, p.PutSlot(ctx, apps.SlotCalendar, SlotRecord{Package: "com.cal"}))

	for key, want := range map[string]string{
		"APP_NAME_SWIPE_LEFT":                "Cam",
		"APP_PACKAGE_SWIPE_LEFT":             "com.cam",
		"APP_USER_SWIPE_LEFT":                "u0",
		"APP_ACTIVITY_CLASS_NAME_SWIPE_LEFT": "com.cam.A",
		"CALENDAR_APP_PACKAGE":               "com.cal",
	} {
		v, found, err := kv.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, found, key)
		assert.Equal(t, want, v.Str, key)
	}
}

func TestSetSlotLabel(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()

	require.NoError(t, p.PutSlot(ctx, apps.SlotHome4, SlotRecord{Label: "Maps", Package: "com.maps"}))
	require.NoError(t, p.SetSlotLabel(ctx, apps.SlotHome4, "Navigation"))

	got, err := p.Slot(ctx, apps.SlotHome4)
	require.NoError(t, err)
	assert.Equal(t, "Navigation", got.Label)
	assert.Equal(t, "com.maps", got.Package)
}

func TestHiddenSet(t *testing.T) {
	h := NewHiddenSet(apps.Identity{Package: "a", Profile: "u0"}, apps.Identity{Package: "b", Profile: apps.AnyProfile})

	assert.True(t, h.Contains(apps.Identity{Package: "a", Profile: "u0"}))
	assert.False(t, h.Contains(apps.Identity{Package: "a", Profile: "u10"}))
	assert.True(t, h.Contains(apps.Identity{Package: "b", Profile: "u10"}), "wildcard hides every profile")

	h.Unhide(apps.Identity{Package: "b", Profile: "u10"})
	assert.False(t, h.Contains(apps.Identity{Package: "b", Profile: "u10"}))
	assert.Equal(t, []string{"a|u0"}, h.Strings())

	var zero HiddenSet
	assert.False(t, zero.Contains(apps.Identity{Package: "a"}))
	zero.Hide(apps.Identity{Package: "x", Profile: "u0"})
	assert.Equal(t, 1, zero.Len())
}

func TestHiddenApps_RoundTrip(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()

	h, err := p.HiddenApps(ctx)
	require.NoError(t, err)
	assert.Zero(t, h.Len())

	h.Hide(apps.Identity{Package: "com.a", Profile: "u0"})
	require.NoError(t, p.SetHiddenApps(ctx, h))

	got, err := p.HiddenApps(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.a|u0"}, got.Strings())

	first, err := p.FirstHide(ctx)
	require.NoError(t, err)
	assert.True(t, first)
	require.NoError(t, p.SetFirstHide(ctx, false))
	first, err = p.FirstHide(ctx)
	require.NoError(t, err)
	assert.False(t, first)
}

func TestRenameLabels(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()

	require.NoError(t, p.SetRenameLabel(ctx, "com.a", "  Alpha "))
	require.NoError(t, p.SetRenameLabel(ctx, "com.b", "Beta"))

	labels, err := p.RenameLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"com.a": "Alpha", "com.b": "Beta"}, labels)

	require.NoError(t, p.SetRenameLabel(ctx, "com.a", "   "))
	_, ok, err := p.RenameLabel(ctx, "com.a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()

	require.NoError(t, p.SetAppCategories(ctx, "com.a", []string{"Work", "Games", "Work"}))
	require.NoError(t, p.SetAppCategories(ctx, "com.b", []string{"Games"}))

	all, err := p.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"com.a": {"Games", "Work"}, "com.b": {"Games"}}, all)

	require.NoError(t, p.SetAppCategories(ctx, "com.a", nil))
	got, err := p.AppCategories(ctx, "com.a")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFunnel_DefaultsAndWrites(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()

	r, err := p.Funnel(ctx)
	require.NoError(t, err)
	assert.Equal(t, "START", r.State)
	assert.True(t, r.FirstOpen.IsZero())

	first := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, p.SetUserState(ctx, "REVIEW"))
	require.NoError(t, p.SetFirstOpenTime(ctx, first))
	require.NoError(t, p.SetShareShownTime(ctx, first.Add(time.Hour)))
	require.NoError(t, p.SetShownOnDay(ctx, 32, 2026))
	require.NoError(t, p.SetRateClicked(ctx, true))
	require.NoError(t, p.SetWallpaperMsgShown(ctx, true))
	require.NoError(t, p.SetDailyWallpaper(ctx, true))

	r, err = p.Funnel(ctx)
	require.NoError(t, err)
	assert.Equal(t, FunnelRecord{
		State:             "REVIEW",
		FirstOpen:         first,
		WallpaperMsgShown: true,
		RateClicked:       true,
		ShareShown:        first.Add(time.Hour),
		ShownOnDayOfYear:  32,
		ShownOnYear:       2026,
		DailyWallpaper:    true,
	}, r)
}

func TestLayoutSettings(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()

	n, err := p.HomeAppsNum(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, p.SetHomeAppsNum(ctx, 6))
	n, err = p.HomeAppsNum(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Error(t, p.SetHomeAppsNum(ctx, 9))

	on, err := p.SwipeEnabled(ctx, true)
	require.NoError(t, err)
	assert.True(t, on)
	require.NoError(t, p.SetSwipeEnabled(ctx, true, false))
	on, err = p.SwipeEnabled(ctx, true)
	require.NoError(t, err)
	assert.False(t, on)

	action, err := p.SwipeDownAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, "notifications", action)
	assert.Error(t, p.SetSwipeDownAction(ctx, "dance"))
}

func TestGet_WrongKind(t *testing.T) {
	p, kv := newTestPrefs(t)
	ctx := t.Context()
	require.NoError(t, kv.Apply(ctx, store.NewBatch().Put(KeyHomeAppsNum, store.String("four"))))

	_, err := p.HomeAppsNum(ctx)
	assert.ErrorContains(t, err, "holds string, want int")
}

func TestPrefs_SQLiteBacked(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	p := New(s)
	ctx := t.Context()
	require.NoError(t, p.PutSlot(ctx, apps.SlotHome1, SlotRecord{Label: "Maps", Package: "com.maps", Profile: "u0"}))
	got, err := p.Slot(ctx, apps.SlotHome1)
	require.NoError(t, err)
	assert.Equal(t, "com.maps", got.Package)
}

func TestRawAndDump(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()
	require.NoError(t, p.SetHomeAppsNum(ctx, 6))
	require.NoError(t, p.SetHiddenApps(ctx, NewHiddenSet(apps.ParseIdentity("com.b|u0"), apps.ParseIdentity("com.a|u0"))))
	require.NoError(t, p.SetSwipeDownAction(ctx, SwipeDownSearch))

	v, ok, err := p.Raw(ctx, KeyHomeAppsNum)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(6), v)

	_, ok, err = p.Raw(ctx, KeyFirstHide)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := p.Dump(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		KeyHomeAppsNum:     int64(6),
		KeyHiddenApps:      []string{"com.a|u0", "com.b|u0"},
		KeySwipeDownAction: "search",
	}, all)
}

func TestSeedHomeAppsNum(t *testing.T) {
	p, _ := newTestPrefs(t)
	ctx := t.Context()

	wrote, err := p.SeedHomeAppsNum(ctx, 6)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = p.SeedHomeAppsNum(ctx, 2)
	require.NoError(t, err)
	assert.False(t, wrote)

	n, err := p.HomeAppsNum(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
