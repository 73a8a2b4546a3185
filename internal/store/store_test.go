package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	for range 3 {
		s, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	version, err := s.pragma("user_version")
	require.NoError(t, err)
	assert.Equal(t, "1", version)
}

func TestOpen_MissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent", "prefs.db"))
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := t.Context()
	require.NoError(t, s.Apply(ctx, NewBatch().Put("HOME_APPS_NUM", Int(4))))
	v, ok, err := s.Get(ctx, "HOME_APPS_NUM")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(4), v.Int)
}

func TestClose_Unopened(t *testing.T) {
	assert.NoError(t, (&Store{}).Close())
}

func TestPragmas(t *testing.T) {
	s := createTestStore(t)
	for name, want := range map[string]string{
		"journal_mode": "wal",
		"busy_timeout": "5000",
		"user_version": "1",
	} {
		got, err := s.pragma(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestMigrations_CreateKindIndex(t *testing.T) {
	s := createTestStore(t)

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_prefs_kind'",
	).Scan(&name)
	require.NoError(t, err)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := t.Context()

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Apply(ctx, NewBatch().
		Put("USER_STATE", String("REVIEW")).
		Put("HIDDEN_APPS", Set("b|UserHandle{0}", "a|UserHandle{0}"))))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get(ctx, "USER_STATE")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "REVIEW", v.Str)

	v, ok, err = s2.Get(ctx, "HIDDEN_APPS")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a|UserHandle{0}", "b|UserHandle{0}"}, v.Set)
}

func TestStore_RejectsCorruptValue(t *testing.T) {
	s := createTestStore(t)
	_, err := s.db.Exec(`INSERT INTO prefs (key, kind, value) VALUES ('N', 'int', 'abc')`)
	require.NoError(t, err)

	_, _, err = s.Get(t.Context(), "N")
	assert.ErrorContains(t, err, "decode int")
}
