package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/armkin/internal/i18n"
	"github.com/roach88/armkin/internal/kinematics"
	"github.com/roach88/armkin/internal/render"
)

// PromptOptions holds flags for the prompt command.
type PromptOptions struct {
	*RootOptions
	Plot string // optional SVG output for the resulting pose
}

// NewPromptCommand creates the interactive prompt command.
func NewPromptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PromptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Interactive FK/IK session",
		Long: `Print the arm and its home angles, then ask for a mode.

  FK  prints the end effector for the home angles
  IK  asks for a target X and Y and prints the joint angles

Any other answer prints an invalid-input message. Output is text only.

Examples:
  armkin prompt
  armkin --lang id prompt --plot arm.svg
  printf 'ik\n30\n30\n' | armkin prompt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Plot, "plot", "", "write an SVG plot of the resulting pose")

	return cmd
}

// errNoInput is returned when stdin closes before an answer.
var errNoInput = errors.New("unexpected end of input")

func runPrompt(opts *PromptOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if formatter.Format == "json" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, "prompt supports text output only", nil)
	}

	arm, spec, err := opts.resolveArm()
	if err != nil {
		return reportArmError(formatter, err)
	}

	p := formatter.printer()
	w := formatter.Writer
	in := bufio.NewScanner(cmd.InOrStdin())
	angles := homeAngles(spec)

	p.Fprintf(w, i18n.MsgArmHeader, i18n.Num(arm.L1()), i18n.Num(arm.L2()), arm.DOF())
	p.Fprintf(w, i18n.MsgGivenAngles, i18n.Num(angles.Theta1), i18n.Num(angles.Theta2))
	fmt.Fprintln(w)

	p.Fprintf(w, i18n.MsgModePrompt)
	mode, err := readLine(in)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeIO, err.Error(), nil)
	}

	switch strings.ToUpper(mode) {
	case "FK":
		end := arm.Forward(angles).EndEffector
		p.Fprintf(w, i18n.MsgEndEffector, i18n.Fixed(end.X), i18n.Fixed(end.Y))
		return opts.plot(formatter, arm, angles)

	case "IK":
		x, err := readNumber(formatter, in, i18n.MsgTargetX)
		if err != nil {
			return err
		}
		y, err := readNumber(formatter, in, i18n.MsgTargetY)
		if err != nil {
			return err
		}

		switch s := arm.InverseKinematics(x, y).(type) {
		case kinematics.Reachable:
			p.Fprintf(w, i18n.MsgAngles, i18n.Fixed(s.Angles.Theta1), i18n.Fixed(s.Angles.Theta2))
			return opts.plot(formatter, arm, s.Angles)
		case kinematics.Unreachable:
			logUnreachable(opts.logger(formatter.GetErrWriter()), s)
			fmt.Fprintln(w, p.Sprintf(i18n.MsgUnreachable))
		}

	default:
		fmt.Fprintln(w, p.Sprintf(i18n.MsgInvalidInput))
	}

	return nil
}

// plot writes the pose when --plot is set.
func (o *PromptOptions) plot(f *OutputFormatter, arm kinematics.Arm, angles kinematics.JointAngles) error {
	if o.Plot == "" {
		return nil
	}
	if err := writePlot(o.Plot, arm, angles, render.DefaultOptions()); err != nil {
		return f.Fail(ExitCommandError, ErrCodeIO, err.Error(), nil)
	}
	f.printer().Fprintf(f.Writer, i18n.MsgPlotWritten, o.Plot)
	return nil
}

func readLine(in *bufio.Scanner) (string, error) {
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", errNoInput
	}
	return strings.TrimSpace(in.Text()), nil
}

// readNumber prompts with key and parses the answer as a float.
func readNumber(f *OutputFormatter, in *bufio.Scanner, key string) (float64, error) {
	p := f.printer()
	p.Fprintf(f.Writer, key)

	line, err := readLine(in)
	if err != nil {
		return 0, f.Fail(ExitCommandError, ErrCodeIO, err.Error(), nil)
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, f.Fail(ExitCommandError, ErrCodeInvalidArgs, p.Sprintf(i18n.MsgInvalidNumber, line), nil)
	}
	return v, nil
}
