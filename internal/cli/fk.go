package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/roach88/armkin/internal/i18n"
	"github.com/roach88/armkin/internal/kinematics"
)

// FKResult is the output of the fk command.
type FKResult struct {
	Arm         ArmInfo                `json:"arm"`
	Angles      kinematics.JointAngles `json:"angles"`
	Joint1      kinematics.Point2D     `json:"joint1"`
	EndEffector kinematics.Point2D     `json:"end_effector"`
}

func (r FKResult) renderText(w io.Writer, p *message.Printer, verbose bool) {
	if verbose {
		p.Fprintf(w, i18n.MsgJoint1, i18n.Fixed(r.Joint1.X), i18n.Fixed(r.Joint1.Y))
	}
	p.Fprintf(w, i18n.MsgEndEffector, i18n.Fixed(r.EndEffector.X), i18n.Fixed(r.EndEffector.Y))
}

// NewFKCommand creates the fk command.
func NewFKCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fk [theta1 theta2]",
		Short: "Forward kinematics: joint angles to end-effector position",
		Long: `Compute the joint 1 and end-effector positions for joint angles in degrees.

Without angles, the arm's home pose from --spec is used, or the reference
angles θ1=40°, θ2=30°.

Examples:
  armkin fk
  armkin fk 40 30
  armkin fk -- -45 90
  armkin --spec arms.cue --arm leg fk --format json`,
		Args:          rangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFK(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runFK(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	arm, spec, err := opts.resolveArm()
	if err != nil {
		return reportArmError(formatter, err)
	}

	angles := homeAngles(spec)
	if len(args) == 2 {
		values, err := parseFloats(formatter, args)
		if err != nil {
			return err
		}
		angles = kinematics.JointAngles{Theta1: values[0], Theta2: values[1]}
	}

	formatter.VerboseLog("%s, %s", arm, angles)
	pose := arm.Forward(angles)

	return formatter.Success(FKResult{
		Arm:         armInfo(arm, spec),
		Angles:      angles,
		Joint1:      pose.Joint1,
		EndEffector: pose.EndEffector,
	})
}

// rangeArgs accepts either none or exactly n positional arguments.
func rangeArgs(none, n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != none && len(args) != n {
			return fmt.Errorf("accepts %d or %d arg(s), received %d", none, n, len(args))
		}
		return nil
	}
}
