package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string // explicit config file
	Database string
	Catalog  string
	Now      string // pins the funnel clock (RFC 3339); empty uses the host clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the launchcore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "launchcore",
		Short: "launchcore - minimalist home-screen launcher core",
		Long: `Drive the launcher core from the command line.

Preferences persist in a SQLite database; installed apps come from a
device catalog (YAML). Every command prints what the launcher would do and
the device events it caused.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.Config, "config", "", "config file (default $XDG_CONFIG_HOME/launchcore/config.yaml)")
	pf.StringVar(&opts.Database, "db", "", "path to SQLite preference database")
	pf.StringVar(&opts.Catalog, "catalog", "", "device catalog file (default built-in)")
	pf.StringVar(&opts.Now, "now", "", "pin the current time (RFC 3339)")
	_ = pf.MarkHidden("now")

	cmd.AddCommand(NewAppsCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewLaunchCommand(opts))
	cmd.AddCommand(NewHideCommand(opts, true))
	cmd.AddCommand(NewHideCommand(opts, false))
	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewCategoryCommand(opts))
	cmd.AddCommand(NewUninstallCommand(opts))
	cmd.AddCommand(NewSlotCommand(opts))
	cmd.AddCommand(NewHomeCommand(opts))
	cmd.AddCommand(NewGestureCommand(opts))
	cmd.AddCommand(NewFunnelCommand(opts))
	cmd.AddCommand(NewSettingsCommand(opts))
	cmd.AddCommand(NewPrefsCommand(opts))
	cmd.AddCommand(NewScenarioCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
