package cli

import (
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/roach88/armkin/internal/i18n"
	"github.com/roach88/armkin/internal/kinematics"
)

// IKResult is the output of the ik command for a reachable target.
type IKResult struct {
	Arm    ArmInfo                `json:"arm"`
	Target kinematics.Point2D     `json:"target"`
	Angles kinematics.JointAngles `json:"angles"`
}

func (r IKResult) renderText(w io.Writer, p *message.Printer, _ bool) {
	p.Fprintf(w, i18n.MsgAngles, i18n.Fixed(r.Angles.Theta1), i18n.Fixed(r.Angles.Theta2))
}

// NewIKCommand creates the ik command.
func NewIKCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ik <x> <y>",
		Short: "Inverse kinematics: target position to joint angles",
		Long: `Compute the elbow-up joint angles (degrees) that place the end effector at (x, y).

Targets outside the annulus |L1-L2| <= d <= L1+L2 are unreachable.

Exit codes:
  0 - Target reachable
  1 - Target unreachable
  2 - Command error (bad numbers, bad arm)

Examples:
  armkin ik 35.13 55.59
  armkin --lang id ik 1000 1000`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIK(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runIK(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	arm, spec, err := opts.resolveArm()
	if err != nil {
		return reportArmError(formatter, err)
	}

	values, err := parseFloats(formatter, args)
	if err != nil {
		return err
	}
	target := kinematics.Point2D{X: values[0], Y: values[1]}

	switch s := arm.Inverse(target).(type) {
	case kinematics.Reachable:
		return formatter.Success(IKResult{
			Arm:    armInfo(arm, spec),
			Target: target,
			Angles: s.Angles,
		})
	case kinematics.Unreachable:
		logUnreachable(opts.logger(formatter.GetErrWriter()), s)
		return formatter.Fail(ExitFailure, ErrCodeUnreachable,
			formatter.printer().Sprintf(i18n.MsgUnreachable), unreachableDetails(s))
	}
	return nil
}
