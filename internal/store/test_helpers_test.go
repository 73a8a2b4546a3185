package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestStore opens a file-backed store that is closed with the test.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// implementations returns both KV implementations keyed by name.
func implementations(t *testing.T) map[string]KV {
	t.Helper()
	return map[string]KV{
		"sqlite": createTestStore(t),
		"memory": NewMemory(),
	}
}
