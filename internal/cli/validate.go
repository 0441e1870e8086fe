package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/roach88/armkin/internal/armspec"
)

// ValidationError is one problem found in the arm specs.
type ValidationError struct {
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Position *SpecPosition `json:"position,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Arms   []armspec.Spec    `json:"arms,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r ValidationResult) renderText(w io.Writer, _ *message.Printer, verbose bool) {
	fmt.Fprintf(w, "✓ %d arm(s) valid\n", len(r.Arms))
	for _, s := range r.Arms {
		fmt.Fprintf(w, "  %s: L1=%g, L2=%g", s.Name, s.L1, s.L2)
		if s.Description != "" {
			fmt.Fprintf(w, " (%s)", s.Description)
		}
		fmt.Fprintln(w)
		if verbose {
			fmt.Fprintf(w, "    home: %s\n", s.HomeOrReference())
		}
	}
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <spec-path>",
		Short: "Validate CUE arm specs",
		Long: `Validate CUE arm definitions against the arm schema and list the arms.

A spec path is a .cue file or a directory of .cue files. Every arm needs
positive l1 and l2; description and home angles are optional:

  arm: leg: {
      l1: 28
      l2: 40
      description: "femur/tibia"
      home: {theta1: 40, theta2: 30}
  }

Exit codes:
  0 - All arms valid
  1 - One or more arms invalid
  2 - Spec path could not be loaded`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loadResult, loadErrors := armspec.Load(specPath, armspec.LoadModeCollectAll)

	// Handle load errors (path not found, no files, syntax errors)
	if loadResult == nil && len(loadErrors) > 0 {
		return reportArmError(formatter, loadErrors[0])
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, specPath)

	if len(loadErrors) > 0 {
		return outputValidationErrors(formatter, toValidationErrors(loadErrors))
	}

	return formatter.Success(ValidationResult{Valid: true, Arms: loadResult.Specs})
}

func toValidationErrors(errs []error) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, err := range errs {
		var loadErr *armspec.LoadError
		if errors.As(err, &loadErr) {
			out = append(out, ValidationError{
				Code:     loadErr.Code,
				Message:  loadErr.Message,
				Position: specPosition(loadErr.Pos),
			})
			continue
		}
		out = append(out, ValidationError{Code: armspec.ErrCodeGeneric, Message: err.Error()})
	}
	return out
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
			TraceID: formatter.TraceID,
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Position != nil {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n", err.Position.File, err.Position.Line, err.Position.Column)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
