// Package config loads launchcore settings from defaults, an optional YAML
// file, LAUNCHCORE_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/launchcore/internal/search"
)

// EnvPrefix prefixes every environment override, e.g. LAUNCHCORE_DATABASE_PATH.
const EnvPrefix = "LAUNCHCORE"

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Device   DeviceConfig   `mapstructure:"device"`
	Launcher LauncherConfig `mapstructure:"launcher"`
	Search   SearchConfig   `mapstructure:"search"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DeviceConfig selects the simulated device catalog. An empty path uses
// the built-in catalog.
type DeviceConfig struct {
	Catalog string `mapstructure:"catalog"`
}

// LauncherConfig holds launcher behaviour settings.
type LauncherConfig struct {
	// HomeApps seeds the visible home slot count on first run. 0 keeps the
	// stored or default count.
	HomeApps      int      `mapstructure:"home_apps"`
	Categories    []string `mapstructure:"categories"`
	ClockPackages []string `mapstructure:"clock_packages"`
}

// SearchConfig holds search settings.
type SearchConfig struct {
	BangURL string `mapstructure:"bang_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// DefaultClockPackages are the clock apps tried when the clock slot is empty.
var DefaultClockPackages = []string{
	"com.google.android.deskclock",
	"com.android.deskclock",
	"com.sec.android.app.clockpackage",
	"com.oneplus.deskclock",
	"com.htc.android.worldclock",
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Flags are bound on top of file and environment values. Each key in
	// FlagKeys maps a config key to a flag name.
	Flags    *pflag.FlagSet
	FlagKeys map[string]string
}

// DefaultFile returns $XDG_CONFIG_HOME/launchcore/config.yaml, falling back
// to ~/.config.
func DefaultFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "launchcore", "config.yaml")
}

// DefaultDatabase returns $XDG_DATA_HOME/launchcore/launchcore.db, falling
// back to ~/.local/share.
func DefaultDatabase() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	return filepath.Join(dir, "launchcore", "launchcore.db")
}

// Load reads configuration.
func Load(opts Options) (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", DefaultDatabase())
	v.SetDefault("device.catalog", "")
	v.SetDefault("launcher.home_apps", 0)
	v.SetDefault("launcher.categories", []string{})
	v.SetDefault("launcher.clock_packages", DefaultClockPackages)
	v.SetDefault("search.bang_url", search.DefaultBangURL)
	v.SetDefault("log.verbose", false)

	v.SetConfigType("yaml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigFile(DefaultFile())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Only an explicitly requested file has to exist.
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if opts.File != "" || !missing {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for key, name := range opts.FlagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				return Config{}, fmt.Errorf("bind %s: no flag %q", key, name)
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind %s: %w", key, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Launcher.HomeApps < 0 || c.Launcher.HomeApps > 8 {
		return fmt.Errorf("launcher.home_apps %d out of range 0..8", c.Launcher.HomeApps)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path is empty")
	}
	return nil
}
