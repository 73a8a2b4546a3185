package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/gesture"
	"github.com/roach88/launchcore/internal/launcher"
	"github.com/roach88/launchcore/internal/slots"
)

type slotView struct {
	Slot     string `json:"slot"`
	Kind     string `json:"kind"`
	Label    string `json:"label,omitempty"`
	Package  string `json:"package,omitempty"`
	Profile  string `json:"profile,omitempty"`
	Activity string `json:"activity,omitempty"`
	Category string `json:"category,omitempty"`
}

func (v slotView) String() string {
	switch v.Kind {
	case slots.KindApp.String():
		return fmt.Sprintf("%-12s %s (%s as %s)", v.Slot, v.Label, v.Package, v.Profile)
	case slots.KindCategory.String():
		return fmt.Sprintf("%-12s [%s]", v.Slot, v.Category)
	}
	return fmt.Sprintf("%-12s -", v.Slot)
}

func newSlotView(a slots.Assignment) slotView {
	v := slotView{Slot: string(a.Slot), Kind: a.Kind().String(), Category: a.Category}
	if a.App != nil {
		v.Label = a.App.Label
		v.Package = a.App.Package
		v.Profile = string(a.App.Profile)
		v.Activity = a.App.Activity
	}
	return v
}

type slotsView []slotView

func (v slotsView) String() string {
	lines := make([]string, 0, len(v))
	for _, s := range v {
		lines = append(lines, s.String())
	}
	return strings.Join(lines, "\n")
}

func parseSlot(s string) (apps.Slot, error) {
	slot, err := apps.ParseSlot(s)
	if err != nil {
		return "", NewExitError(ExitCommandError, err.Error())
	}
	return slot, nil
}

// slotCommand builds a "slot <verb> <slot> ..." subcommand.
func slotCommand(rootOpts *RootOptions, use, short string, args cobra.PositionalArgs, fn func(cmd *cobra.Command, s *session, slot apps.Slot, rest []string) error) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          args,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				return fn(cmd, s, slot, args[1:])
			})
		},
	}
}

// NewSlotCommand creates the slot command group.
func NewSlotCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Inspect and change slot assignments",
		Long: `Inspect and change slot assignments.

Slots: home-1..home-8, swipe-left, swipe-right, clock, calendar.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Show every slot binding",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				out := make(slotsView, 0, len(apps.AllSlots))
				for _, slot := range apps.AllSlots {
					a, err := s.launcher.Binding(cmd.Context(), slot)
					if err != nil {
						return err
					}
					out = append(out, newSlotView(a))
				}
				return s.emit(out)
			})
		},
	})

	var profile string
	set := slotCommand(rootOpts, "set <slot> <package>", "Bind an app to a slot", cobra.ExactArgs(2),
		func(cmd *cobra.Command, s *session, slot apps.Slot, rest []string) error {
			e, err := s.launcher.Find(cmd.Context(), rest[0], apps.Profile(profile))
			if err != nil {
				return err
			}
			eff, err := s.launcher.SelectApp(cmd.Context(), e, launcher.SlotIntent(slot))
			if err != nil {
				return err
			}
			return s.emit(viewEffect(eff))
		})
	set.Flags().StringVar(&profile, "profile", "", "profile of the app (default current)")
	cmd.AddCommand(set)

	cmd.AddCommand(slotCommand(rootOpts, "category <slot> <name>", "Bind a category view to a home slot", cobra.ExactArgs(2),
		func(cmd *cobra.Command, s *session, slot apps.Slot, rest []string) error {
			if err := s.launcher.AssignCategory(cmd.Context(), slot, rest[0]); err != nil {
				return err
			}
			return s.emit(fmt.Sprintf("assigned [%s] to %s", strings.TrimSpace(rest[0]), slot))
		}))

	cmd.AddCommand(slotCommand(rootOpts, "clear <slot>", "Remove a slot binding", cobra.ExactArgs(1),
		func(cmd *cobra.Command, s *session, slot apps.Slot, _ []string) error {
			if err := s.launcher.ClearSlot(cmd.Context(), slot); err != nil {
				return err
			}
			return s.emit("cleared " + string(slot))
		}))

	cmd.AddCommand(slotCommand(rootOpts, "rename <slot> <label>", "Relabel the app on a home slot", cobra.ExactArgs(2),
		func(cmd *cobra.Command, s *session, slot apps.Slot, rest []string) error {
			if err := s.launcher.RenameSlot(cmd.Context(), slot, rest[0]); err != nil {
				return err
			}
			return s.emit(fmt.Sprintf("renamed %s to %q", slot, strings.TrimSpace(rest[0])))
		}))

	cmd.AddCommand(slotCommand(rootOpts, "open <slot>", "Tap a slot", cobra.ExactArgs(1),
		func(cmd *cobra.Command, s *session, slot apps.Slot, _ []string) error {
			eff, err := s.launcher.OpenSlot(cmd.Context(), slot)
			if err != nil {
				return err
			}
			return s.emit(viewEffect(eff))
		}))

	cmd.AddCommand(slotCommand(rootOpts, "press <slot>", "Long-press a slot", cobra.ExactArgs(1),
		func(cmd *cobra.Command, s *session, slot apps.Slot, _ []string) error {
			eff, err := s.launcher.LongPressSlot(cmd.Context(), slot)
			if err != nil {
				return err
			}
			return s.emit(viewEffect(eff))
		}))

	return cmd
}

type homeView []launcher.HomeSlot

func (v homeView) String() string {
	if len(v) == 0 {
		return "no home slots"
	}
	lines := make([]string, 0, len(v))
	for _, s := range v {
		switch s.Kind {
		case slots.KindCategory:
			lines = append(lines, fmt.Sprintf("%s  [%s]", s.Slot, s.Category))
		case slots.KindApp:
			lines = append(lines, fmt.Sprintf("%s  %s", s.Slot, s.Label))
		default:
			lines = append(lines, fmt.Sprintf("%s  -", s.Slot))
		}
	}
	return strings.Join(lines, "\n")
}

func (v homeView) MarshalJSON() ([]byte, error) {
	out := make(slotsView, 0, len(v))
	for _, s := range v {
		out = append(out, slotView{Slot: string(s.Slot), Kind: s.Kind.String(), Label: s.Label, Category: s.Category})
	}
	return json.Marshal(out)
}

// NewHomeCommand creates the home command.
func NewHomeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Render the home screen",
		Long: `Render the visible home slots. A slot whose app was uninstalled shows
empty; its binding is kept.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				home, err := s.launcher.Home(cmd.Context())
				if err != nil {
					return err
				}
				return s.emit(homeView(home))
			})
		},
	}
}

// NewGestureCommand creates the gesture command.
func NewGestureCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gesture <name>",
		Short: "Perform a home-screen gesture",
		Long: `Perform a home-screen gesture: swipe-left, swipe-right, swipe-up,
swipe-down, long-click, double-click, triple-click or click.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gesture.Parse(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				eff, err := s.launcher.Gesture(cmd.Context(), g)
				if err != nil {
					return err
				}
				return s.emit(viewEffect(eff))
			})
		},
	}
}
