package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/roach88/armkin/internal/i18n"
	"github.com/roach88/armkin/internal/kinematics"
	"github.com/roach88/armkin/internal/render"
)

// PlotOptions holds flags for the plot command.
type PlotOptions struct {
	*RootOptions
	Output string    // SVG output path
	IK     []float64 // target x,y; solve IK and plot the solution
	Title  string
}

// PlotResult is the output of the plot command.
type PlotResult struct {
	Path        string                 `json:"path"`
	Arm         ArmInfo                `json:"arm"`
	Angles      kinematics.JointAngles `json:"angles"`
	EndEffector kinematics.Point2D     `json:"end_effector"`
}

func (r PlotResult) renderText(w io.Writer, p *message.Printer, verbose bool) {
	if verbose {
		p.Fprintf(w, i18n.MsgAngles, i18n.Fixed(r.Angles.Theta1), i18n.Fixed(r.Angles.Theta2))
		p.Fprintf(w, i18n.MsgEndEffector, i18n.Fixed(r.EndEffector.X), i18n.Fixed(r.EndEffector.Y))
	}
	p.Fprintf(w, i18n.MsgPlotWritten, r.Path)
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plot [theta1 theta2]",
		Short: "Render the arm pose as an SVG plot",
		Long: `Render links, joints, end effector, coordinate labels and an info box to SVG.

The pose is given by joint angles, by --ik x,y (the IK solution is plotted),
or defaults to the arm's home pose.

Examples:
  armkin plot -o arm.svg
  armkin plot 40 30 -o arm.svg
  armkin plot --ik 35.13,55.59 -o solved.svg`,
		Args:          rangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "arm.svg", "SVG output file")
	cmd.Flags().Float64SliceVar(&opts.IK, "ik", nil, "plot the IK solution for target x,y")
	cmd.Flags().StringVar(&opts.Title, "title", "", "plot title")

	return cmd
}

func runPlot(opts *PlotOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	arm, spec, err := opts.resolveArm()
	if err != nil {
		return reportArmError(formatter, err)
	}

	angles := homeAngles(spec)
	switch {
	case len(opts.IK) > 0 && len(args) > 0:
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, "joint angles and --ik are mutually exclusive", nil)

	case len(opts.IK) > 0:
		if len(opts.IK) != 2 {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs,
				fmt.Sprintf("--ik takes x,y, got %d value(s)", len(opts.IK)), nil)
		}
		target := kinematics.Point2D{X: opts.IK[0], Y: opts.IK[1]}
		solution := arm.Inverse(target)
		solved, ok := kinematics.AnglesOf(solution)
		if !ok {
			u := solution.(kinematics.Unreachable)
			logUnreachable(opts.logger(formatter.GetErrWriter()), u)
			return formatter.Fail(ExitFailure, ErrCodeUnreachable,
				formatter.printer().Sprintf(i18n.MsgUnreachable), unreachableDetails(u))
		}
		angles = solved

	case len(args) == 2:
		values, err := parseFloats(formatter, args)
		if err != nil {
			return err
		}
		angles = kinematics.JointAngles{Theta1: values[0], Theta2: values[1]}
	}

	renderOpts := render.DefaultOptions()
	if opts.Title != "" {
		renderOpts.Title = opts.Title
	}
	if err := writePlot(opts.Output, arm, angles, renderOpts); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeIO, err.Error(), nil)
	}
	formatter.VerboseLog("wrote %s for %s", opts.Output, angles)

	return formatter.Success(PlotResult{
		Path:        opts.Output,
		Arm:         armInfo(arm, spec),
		Angles:      angles,
		EndEffector: arm.Forward(angles).EndEffector,
	})
}
