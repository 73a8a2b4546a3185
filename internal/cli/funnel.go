package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/launchcore/internal/funnel"
)

type dialogView struct {
	Dialog string `json:"dialog"`
}

func (v dialogView) String() string {
	if v.Dialog == "" {
		return "no dialog"
	}
	return "dialog: " + v.Dialog
}

type stateView struct {
	State string `json:"state"`
}

func (v stateView) String() string { return "state: " + v.State }

// NewFunnelCommand creates the funnel command group.
func NewFunnelCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funnel",
		Short: "Drive the engagement funnel",
		Long: `Drive the engagement funnel.

"check" evaluates the funnel as a home-screen visit does and prints the
dialog due now, if any. "ack" records that a dialog was shown; "rate"
records that the user followed a review or rate prompt.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "check",
		Short:         "Evaluate the funnel",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				d, err := s.launcher.CheckFunnel(cmd.Context())
				if err != nil {
					return err
				}
				return s.emit(dialogView{Dialog: d.String()})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "ack <dialog>",
		Short:         "Record that a dialog was shown",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := funnel.ParseDialog(args[0])
			if !ok {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown dialog %q", args[0]))
			}
			return withSession(cmd, rootOpts, func(s *session) error {
				if err := s.launcher.DialogShown(cmd.Context(), d); err != nil {
					return err
				}
				return s.emit("acknowledged " + d.String())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "rate",
		Short:         "Record that the user followed the rate prompt",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				if err := s.launcher.RateClicked(cmd.Context()); err != nil {
					return err
				}
				return s.emit("rate recorded")
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "state",
		Short:         "Print the stored funnel state",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				st, err := s.launcher.FunnelState(cmd.Context())
				if err != nil {
					return err
				}
				return s.emit(stateView{State: st.String()})
			})
		},
	})

	return cmd
}
