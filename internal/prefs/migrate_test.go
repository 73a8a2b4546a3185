package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/launchcore/internal/store"
)

func TestMigrate_LegacyFormats(t *testing.T) {
	kv := store.NewMemory()
	ctx := t.Context()

	seed := store.NewBatch().
		Put(KeyHiddenApps, store.Set("com.old", "com.new|u0")).
		Put("com.example.mail", store.String("Post")).
		Put("com.example.maps", store.String("Old Maps")).
		Put(RenameKey("com.example.maps"), store.String("New Maps")).
		Put(KeyHomeAppsNum, store.Int(5))
	require.NoError(t, kv.Apply(ctx, seed))

	p, err := Load(ctx, kv, nil)
	require.NoError(t, err)

	h, err := p.HiddenApps(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.new|u0", "com.old|*"}, h.Strings())

	labels, err := p.RenameLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"com.example.mail": "Post",
		"com.example.maps": "New Maps",
	}, labels)

	_, found, err := kv.Get(ctx, "com.example.mail")
	require.NoError(t, err)
	assert.False(t, found, "legacy key removed")

	n, err := p.HomeAppsNum(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "unrelated keys untouched")

	v, found, err := kv.Get(ctx, KeyPrefsVersion)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(currentPrefsVersion), v.Int)
}

func TestMigrate_Idempotent(t *testing.T) {
	kv := store.NewMemory()
	ctx := t.Context()
	require.NoError(t, kv.Apply(ctx, store.NewBatch().Put(KeyHiddenApps, store.Set("com.old"))))

	require.NoError(t, Migrate(ctx, kv, nil))
	require.NoError(t, Migrate(ctx, kv, nil))

	v, _, err := kv.Get(ctx, KeyHiddenApps)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.old|*"}, v.Set)
}

func TestMigrate_RejectsNewerVersion(t *testing.T) {
	kv := store.NewMemory()
	ctx := t.Context()
	require.NoError(t, kv.Apply(ctx, store.NewBatch().Put(KeyPrefsVersion, store.Int(99))))

	err := Migrate(ctx, kv, nil)
	assert.ErrorContains(t, err, "newer than supported")
}
