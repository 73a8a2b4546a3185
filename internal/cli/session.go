package cli

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/launchcore/internal/config"
	"github.com/roach88/launchcore/internal/device"
	"github.com/roach88/launchcore/internal/funnel"
	"github.com/roach88/launchcore/internal/launcher"
	"github.com/roach88/launchcore/internal/prefs"
	"github.com/roach88/launchcore/internal/store"
)

// flagKeys maps config keys to the root flags that override them.
var flagKeys = map[string]string{
	"database.path":  "db",
	"device.catalog": "catalog",
	"log.verbose":    "verbose",
}

// session is one command's launcher: config, store, device and facade.
type session struct {
	cfg      config.Config
	store    *store.Store
	device   *device.Device
	launcher *launcher.Launcher
	out      *OutputFormatter
	log      *slog.Logger
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// openSession loads configuration and wires a launcher for cmd. The
// caller must Close it.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	keys := make(map[string]string, len(flagKeys))
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			keys[key] = name
		}
	}
	cfg, err := config.Load(config.Options{File: opts.Config, Flags: cmd.Flags(), FlagKeys: keys})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	level := slog.LevelInfo
	if cfg.Log.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   cfg.Log.Verbose,
	}

	catalog := device.DefaultCatalog()
	if cfg.Device.Catalog != "" {
		if catalog, err = device.LoadCatalog(cfg.Device.Catalog); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load device catalog", err)
		}
	}

	var clock funnel.Clock
	if opts.Now != "" {
		t, err := time.Parse(time.RFC3339, opts.Now)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --now", err)
		}
		clock = fixedClock(t)
	}

	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create database directory", err)
		}
	}
	log.Debug("opening database", "path", cfg.Database.Path)
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	s, err := newSession(cmd, cfg, st, device.New(catalog), clock, out, log)
	if err != nil {
		st.Close()
		return nil, err
	}
	return s, nil
}

func newSession(cmd *cobra.Command, cfg config.Config, st *store.Store, dev *device.Device, clock funnel.Clock, out *OutputFormatter, log *slog.Logger) (*session, error) {
	ctx := cmd.Context()
	p, err := prefs.Load(ctx, st, log)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load preferences", err)
	}
	if cfg.Launcher.HomeApps > 0 {
		if _, err := p.SeedHomeAppsNum(ctx, cfg.Launcher.HomeApps); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to seed home apps", err)
		}
	}

	lopts := launcher.Options{
		BangURL:       cfg.Search.BangURL,
		Categories:    cfg.Launcher.Categories,
		ClockPackages: cfg.Launcher.ClockPackages,
		Clock:         clock,
		Logger:        log,
	}
	l := launcher.New(dev, p, lopts)

	if bound, err := l.SetDefaultClockApp(ctx); err != nil {
		log.Warn("default clock app not set", "error", err)
	} else if bound {
		log.Debug("default clock app bound")
	}

	return &session{cfg: cfg, store: st, device: dev, launcher: l, out: out, log: log}, nil
}

// Close releases the store.
func (s *session) Close() error {
	return s.store.Close()
}

// events drains the device journal into display strings.
func (s *session) events() []string {
	var out []string
	for _, e := range s.device.DrainJournal() {
		out = append(out, e.String())
	}
	return out
}

// emit prints data with the device events the command caused.
func (s *session) emit(data any) error {
	return s.out.SuccessWithEvents(data, s.events())
}

// withSession opens a session, runs fn and maps launcher errors to exit
// codes.
func withSession(cmd *cobra.Command, opts *RootOptions, fn func(s *session) error) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := fn(s); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		return s.out.Fail(err)
	}
	return nil
}
