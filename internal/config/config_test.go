package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/launchcore/internal/search"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	c, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "launchcore", "launchcore.db"), c.Database.Path)
	assert.Empty(t, c.Device.Catalog)
	assert.Equal(t, 0, c.Launcher.HomeApps)
	assert.Equal(t, DefaultClockPackages, c.Launcher.ClockPackages)
	assert.Equal(t, search.DefaultBangURL, c.Search.BangURL)
	assert.False(t, c.Log.Verbose)
}

func TestLoad_DefaultFileIsOptionalButRead(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config", "launchcore", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("launcher:\n  home_apps: 6\n"), 0o644))

	c, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, 6, c.Launcher.HomeApps)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /tmp/prefs.db
device:
  catalog: ./phone.yaml
launcher:
  categories: [Work, Travel]
  clock_packages: [com.example.clock]
search:
  bang_url: "https://example.com/?q="
log:
  verbose: true
`), 0o644))

	c, err := Load(Options{File: path})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prefs.db", c.Database.Path)
	assert.Equal(t, "./phone.yaml", c.Device.Catalog)
	assert.Equal(t, []string{"Work", "Travel"}, c.Launcher.Categories)
	assert.Equal(t, []string{"com.example.clock"}, c.Launcher.ClockPackages)
	assert.Equal(t, "https://example.com/?q=", c.Search.BangURL)
	assert.True(t, c.Log.Verbose)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{File: filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: /from/file.db\n"), 0o644))
	t.Setenv("LAUNCHCORE_DATABASE_PATH", "/from/env.db")
	t.Setenv("LAUNCHCORE_LAUNCHER_HOME_APPS", "3")

	c, err := Load(Options{File: path})
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", c.Database.Path)
	assert.Equal(t, 3, c.Launcher.HomeApps)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("LAUNCHCORE_DATABASE_PATH", "/from/env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("catalog", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "/from/flag.db"}))

	c, err := Load(Options{Flags: flags, FlagKeys: map[string]string{
		"database.path":  "db",
		"device.catalog": "catalog",
	}})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", c.Database.Path)
	assert.Empty(t, c.Device.Catalog, "unset flags do not override")
}

func TestLoad_UnknownFlag(t *testing.T) {
	isolate(t)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	_, err := Load(Options{Flags: flags, FlagKeys: map[string]string{"database.path": "db"}})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)
	t.Setenv("LAUNCHCORE_LAUNCHER_HOME_APPS", "9")
	_, err := Load(Options{})
	assert.ErrorContains(t, err, "out of range")
}
