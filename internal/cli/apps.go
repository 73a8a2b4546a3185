package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/launcher"
)

type entryView struct {
	Label    string `json:"label"`
	Package  string `json:"package"`
	Profile  string `json:"profile"`
	Activity string `json:"activity,omitempty"`
	System   bool   `json:"system,omitempty"`
	New      bool   `json:"new,omitempty"`
}

type listingView struct {
	Ticket     string      `json:"ticket"`
	Intent     string      `json:"intent"`
	Category   string      `json:"category,omitempty"`
	Query      string      `json:"query,omitempty"`
	Entries    []entryView `json:"entries"`
	AutoLaunch bool        `json:"auto_launch"`
}

func (v listingView) String() string {
	if len(v.Entries) == 0 {
		return "no apps"
	}
	var b strings.Builder
	for _, e := range v.Entries {
		fmt.Fprintf(&b, "%-20s %-36s %s", e.Label, e.Package, e.Profile)
		if e.New {
			b.WriteString(" new")
		}
		b.WriteByte('\n')
	}
	if v.AutoLaunch {
		b.WriteString("auto-launch\n")
	}
	return b.String()
}

func newListingView(l launcher.Listing) listingView {
	v := listingView{
		Ticket:     l.Ticket,
		Intent:     l.Intent.String(),
		Category:   l.Category,
		Query:      l.Query,
		Entries:    []entryView{},
		AutoLaunch: l.AutoLaunch,
	}
	for _, e := range l.Entries {
		if e.IsSentinel() {
			continue
		}
		v.Entries = append(v.Entries, entryView{
			Label:    e.Label,
			Package:  e.Package,
			Profile:  string(e.Profile),
			Activity: e.ActivityClass,
			System:   e.System,
			New:      e.New,
		})
	}
	return v
}

type effectView struct {
	Effect string `json:"effect"`
}

func (v effectView) String() string { return v.Effect }

func viewEffect(e launcher.Effect) effectView {
	return effectView{Effect: e.String()}
}

// drawerFlags are shared by commands that act on a drawer listing.
type drawerFlags struct {
	intent   string
	category string
}

func (f *drawerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.intent, "intent", "launch", `drawer intent: launch, hidden or slot:<slot>`)
	cmd.Flags().StringVar(&f.category, "category", "", "category view")
}

func (f *drawerFlags) parse() (launcher.Intent, error) {
	in, err := launcher.ParseIntent(f.intent)
	if err != nil {
		return launcher.Intent{}, NewExitError(ExitCommandError, err.Error())
	}
	return in, nil
}

// NewAppsCommand creates the apps command.
func NewAppsCommand(rootOpts *RootOptions) *cobra.Command {
	var df drawerFlags
	cmd := &cobra.Command{
		Use:   "apps [query]",
		Short: "List the app drawer",
		Long: `List the app drawer, optionally filtered by a query and a category.

Examples:
  launchcore apps
  launchcore apps ma
  launchcore apps --intent hidden
  launchcore apps --category Travel`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			intent, err := df.parse()
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				listing, err := s.launcher.GetFilteredApps(cmd.Context(), strings.Join(args, " "), intent, df.category)
				if err != nil {
					return err
				}
				return s.emit(newListingView(listing))
			})
		},
	}
	df.register(cmd)
	return cmd
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var df drawerFlags
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Submit a search query",
		Long: `Submit a query as if the user pressed enter in the drawer.

A single match launches; "!bang" queries open the bang search URL;
anything else with no match runs a web search.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			intent, err := df.parse()
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				eff, err := s.launcher.Submit(cmd.Context(), strings.Join(args, " "), intent, df.category)
				if err != nil {
					return err
				}
				return s.emit(viewEffect(eff))
			})
		},
	}
	df.register(cmd)
	return cmd
}

// entryFlags identify one app.
type entryFlags struct {
	profile string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "profile of the app (default current)")
}

func (f *entryFlags) find(cmd *cobra.Command, s *session, pkg string) (apps.Entry, error) {
	return s.launcher.Find(cmd.Context(), pkg, apps.Profile(f.profile))
}

// NewLaunchCommand creates the launch command.
func NewLaunchCommand(rootOpts *RootOptions) *cobra.Command {
	var ef entryFlags
	var activity string
	cmd := &cobra.Command{
		Use:           "launch <package>",
		Short:         "Launch an app",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				e, err := ef.find(cmd, s, args[0])
				if err != nil {
					return err
				}
				if activity != "" {
					e.ActivityClass = activity
				}
				eff, err := s.launcher.SelectApp(cmd.Context(), e, launcher.LaunchIntent())
				if err != nil {
					return err
				}
				return s.emit(viewEffect(eff))
			})
		},
	}
	ef.register(cmd)
	cmd.Flags().StringVar(&activity, "activity", "", "activity class to start")
	return cmd
}

type hideView struct {
	Package  string `json:"package"`
	Hidden   bool   `json:"hidden"`
	SetEmpty bool   `json:"set_empty,omitempty"`
	Dialog   string `json:"dialog,omitempty"`
}

func (v hideView) String() string {
	verb := "unhidden"
	if v.Hidden {
		verb = "hidden"
	}
	s := verb + " " + v.Package
	if v.SetEmpty {
		s += "\nno hidden apps left"
	}
	if v.Dialog != "" {
		s += "\ndialog: " + v.Dialog
	}
	return s
}

// NewHideCommand creates the hide command, or unhide when hide is false.
func NewHideCommand(rootOpts *RootOptions, hide bool) *cobra.Command {
	var ef entryFlags
	use, short, intent := "hide", "Hide an app from the drawer", launcher.LaunchIntent()
	if !hide {
		use, short, intent = "unhide", "Show a hidden app again", launcher.HiddenAppsIntent()
	}
	cmd := &cobra.Command{
		Use:           use + " <package>",
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				e, err := ef.find(cmd, s, args[0])
				if err != nil {
					return err
				}
				res, err := s.launcher.ToggleHidden(cmd.Context(), e, intent)
				if err != nil {
					return err
				}
				return s.emit(hideView{
					Package:  e.Package,
					Hidden:   res.Hidden,
					SetEmpty: res.SetEmpty,
					Dialog:   res.Dialog.String(),
				})
			})
		},
	}
	ef.register(cmd)
	return cmd
}

// NewRenameCommand creates the rename command.
func NewRenameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <package> [label]",
		Short: "Rename an app in the drawer",
		Long: `Rename an app in the drawer. Without a label the platform label is
restored.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			label := ""
			if len(args) == 2 {
				label = args[1]
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				if err := s.launcher.RenameApp(cmd.Context(), args[0], label); err != nil {
					return err
				}
				if strings.TrimSpace(label) == "" {
					return s.emit("restored label of " + args[0])
				}
				return s.emit(fmt.Sprintf("renamed %s to %q", args[0], label))
			})
		},
	}
}

type namesView []string

func (v namesView) String() string { return strings.Join(v, "\n") }

// NewCategoryCommand creates the category command group.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage app categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "set <package> [label...]",
		Short:         "Replace the category labels of an app",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				ctx := cmd.Context()
				if err := s.launcher.SetAppCategories(ctx, args[0], args[1:]); err != nil {
					return err
				}
				labels, err := s.launcher.Prefs().AppCategories(ctx, args[0])
				if err != nil {
					return err
				}
				return s.emit(namesView(labels))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List the selectable category views",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				names, err := s.launcher.CategoryNames(cmd.Context())
				if err != nil {
					return err
				}
				return s.emit(namesView(names))
			})
		},
	})
	return cmd
}

// NewUninstallCommand creates the uninstall command.
func NewUninstallCommand(rootOpts *RootOptions) *cobra.Command {
	var ef entryFlags
	cmd := &cobra.Command{
		Use:           "uninstall <package>",
		Short:         "Request uninstallation of an app",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				e, err := ef.find(cmd, s, args[0])
				if err != nil {
					return err
				}
				if err := s.launcher.Uninstall(cmd.Context(), e); err != nil {
					return err
				}
				return s.emit("uninstall requested for " + e.Package)
			})
		},
	}
	ef.register(cmd)
	return cmd
}
