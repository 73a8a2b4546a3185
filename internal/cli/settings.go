package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

type settingsView struct {
	HomeApps       int    `json:"home_apps"`
	SwipeLeft      bool   `json:"swipe_left"`
	SwipeRight     bool   `json:"swipe_right"`
	SwipeDown      string `json:"swipe_down"`
	DailyWallpaper bool   `json:"daily_wallpaper"`
}

func (v settingsView) String() string {
	return fmt.Sprintf("home_apps: %d\nswipe_left: %t\nswipe_right: %t\nswipe_down: %s\ndaily_wallpaper: %t",
		v.HomeApps, v.SwipeLeft, v.SwipeRight, v.SwipeDown, v.DailyWallpaper)
}

// NewSettingsCommand creates the settings command. Without flags it prints
// the current settings; each flag that is set is stored first.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		homeApps   int
		swipeLeft  bool
		swipeRight bool
		swipeDown  string
		wallpaper  bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change launcher settings",
		Long: `Show or change launcher settings.

Examples:
  launchcore settings
  launchcore settings --home-apps 6 --swipe-down search
  launchcore settings --swipe-left=false`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				ctx := cmd.Context()
				p := s.launcher.Prefs()
				flags := cmd.Flags()

				if flags.Changed("home-apps") {
					if err := p.SetHomeAppsNum(ctx, homeApps); err != nil {
						return err
					}
				}
				if flags.Changed("swipe-left") {
					if err := p.SetSwipeEnabled(ctx, true, swipeLeft); err != nil {
						return err
					}
				}
				if flags.Changed("swipe-right") {
					if err := p.SetSwipeEnabled(ctx, false, swipeRight); err != nil {
						return err
					}
				}
				if flags.Changed("swipe-down") {
					if err := p.SetSwipeDownAction(ctx, swipeDown); err != nil {
						return err
					}
				}
				if flags.Changed("daily-wallpaper") {
					if err := s.launcher.SetDailyWallpaper(ctx, wallpaper); err != nil {
						return err
					}
				}

				var v settingsView
				var err error
				if v.HomeApps, err = p.HomeAppsNum(ctx); err != nil {
					return err
				}
				if v.SwipeLeft, err = p.SwipeEnabled(ctx, true); err != nil {
					return err
				}
				if v.SwipeRight, err = p.SwipeEnabled(ctx, false); err != nil {
					return err
				}
				if v.SwipeDown, err = p.SwipeDownAction(ctx); err != nil {
					return err
				}
				rec, err := p.Funnel(ctx)
				if err != nil {
					return err
				}
				v.DailyWallpaper = rec.DailyWallpaper
				return s.emit(v)
			})
		},
	}

	cmd.Flags().IntVar(&homeApps, "home-apps", 4, "visible home slots (0..8)")
	cmd.Flags().BoolVar(&swipeLeft, "swipe-left", true, "enable the swipe-left slot")
	cmd.Flags().BoolVar(&swipeRight, "swipe-right", true, "enable the swipe-right slot")
	cmd.Flags().StringVar(&swipeDown, "swipe-down", "notifications", "swipe-down action (notifications|search)")
	cmd.Flags().BoolVar(&wallpaper, "daily-wallpaper", false, "enable the daily wallpaper")
	return cmd
}

type dumpView map[string]any

func (v dumpView) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s = %v", k, v[k]))
	}
	return strings.Join(lines, "\n")
}

// NewPrefsCommand creates the prefs command group.
func NewPrefsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect the raw preference store",
	}
	cmd.AddCommand(&cobra.Command{
		Use:           "dump",
		Short:         "Print every stored preference key",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				all, err := s.launcher.Prefs().Dump(cmd.Context())
				if err != nil {
					return err
				}
				return s.emit(dumpView(all))
			})
		},
	})
	return cmd
}
