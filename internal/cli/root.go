package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/roach88/armkin/internal/armspec"
	"github.com/roach88/armkin/internal/i18n"
	"github.com/roach88/armkin/internal/kinematics"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Lang    string // "en" | "id"

	// Arm selection: Spec (+ optional ArmName) wins over L1/L2.
	Spec    string
	ArmName string
	L1      float64
	L2      float64

	// IDs generates the trace_id of JSON responses.
	IDs IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the armkin CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{IDs: UUIDv7Generator{}})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "armkin",
		Short: "armkin - 2-DOF planar arm kinematics",
		Long: `Forward and inverse kinematics for a two-link planar arm.

The arm is taken from --spec (a CUE file or directory, see "armkin validate")
or from --l1/--l2, defaulting to the femur/tibia reference arm (L1=28, L2=40).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := i18n.Parse(opts.Lang); err != nil {
				return err
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "en", "message language (en|id)")
	cmd.PersistentFlags().StringVar(&opts.Spec, "spec", "", "CUE arm spec file or directory")
	cmd.PersistentFlags().StringVar(&opts.ArmName, "arm", "", "arm name within --spec")
	cmd.PersistentFlags().Float64Var(&opts.L1, "l1", kinematics.ReferenceL1, "first link length")
	cmd.PersistentFlags().Float64Var(&opts.L2, "l2", kinematics.ReferenceL2, "second link length")

	// Add subcommands
	cmd.AddCommand(NewFKCommand(opts))
	cmd.AddCommand(NewIKCommand(opts))
	cmd.AddCommand(NewPlotCommand(opts))
	cmd.AddCommand(NewPromptCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs the command tree and returns the process exit code.
// Errors already reported by a command come back as *ExitError; anything
// else (bad flags, wrong arg count) is printed here as a command error.
func Execute(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return ExitCommandError
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// formatter builds the output formatter for one command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	ids := o.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		Printer:   o.printer(),
		TraceID:   ids.Generate(),
	}
}

// printer returns the message printer for --lang. The flag is validated
// in PersistentPreRunE, so unknown languages fall back to English here.
func (o *RootOptions) printer() *message.Printer {
	p, err := i18n.Printer(o.Lang)
	if err != nil {
		p, _ = i18n.Printer("en")
	}
	return p
}

// logger returns a text slog logger on w: Debug when verbose, Warn otherwise.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveArm returns the arm selected by the global flags, and its spec
// when it came from --spec.
func (o *RootOptions) resolveArm() (kinematics.Arm, *armspec.Spec, error) {
	if o.Spec == "" {
		arm, err := kinematics.NewArm(o.L1, o.L2)
		if err != nil {
			return kinematics.Arm{}, nil, &armspec.LoadError{Code: armspec.ErrCodeInvalidLength, Message: err.Error()}
		}
		return arm, nil, nil
	}

	loaded, errs := armspec.Load(o.Spec, armspec.LoadModeFailFast)
	if len(errs) > 0 {
		return kinematics.Arm{}, nil, errs[0]
	}
	spec, err := armspec.Select(loaded.Specs, o.ArmName)
	if err != nil {
		return kinematics.Arm{}, nil, err
	}
	return spec.Arm, &spec, nil
}

// homeAngles returns the default joint angles for commands run without
// explicit angles.
func homeAngles(spec *armspec.Spec) kinematics.JointAngles {
	if spec != nil {
		return spec.HomeOrReference()
	}
	return kinematics.ReferenceAngles
}
