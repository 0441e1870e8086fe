package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/roach88/armkin/internal/batch"
	"github.com/roach88/armkin/internal/i18n"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Workers int
}

// BatchResult is the output of the batch command.
type BatchResult struct {
	Arm         ArmInfo         `json:"arm"`
	Outcomes    []batch.Outcome `json:"outcomes"`
	Total       int             `json:"total"`
	Unreachable int             `json:"unreachable"`
}

func (r BatchResult) renderText(w io.Writer, p *message.Printer, _ bool) {
	for _, o := range r.Outcomes {
		switch o.Case {
		case batch.CasePose:
			fmt.Fprintf(w, "[%d] FK %v -> %s\n", o.Index, o.Input, o.Pose.EndEffector)
		case batch.CaseReachable:
			fmt.Fprintf(w, "[%d] IK %v -> %s\n", o.Index, o.Input, o.Angles)
		case batch.CaseUnreachable:
			fmt.Fprintf(w, "[%d] IK %v -> %s\n", o.Index, o.Input, p.Sprintf(i18n.MsgUnreachable))
		}
	}
	fmt.Fprintf(w, "\n%d job(s), %d unreachable\n", r.Total, r.Unreachable)
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <jobs.yaml>",
		Short: "Evaluate many FK/IK requests concurrently",
		Long: `Evaluate a YAML jobs file against the arm. Outcomes keep job order.

Jobs file:
  forward:
    - {theta1: 40, theta2: 30}
  inverse:
    - {x: 35.13, y: 55.59}
    - {x: 1000, y: 1000}

Unreachable targets are reported per job and do not fail the command.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent workers (default GOMAXPROCS)")

	return cmd
}

func runBatch(opts *BatchOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	arm, spec, err := opts.resolveArm()
	if err != nil {
		return reportArmError(formatter, err)
	}

	file, err := batch.LoadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBatchFailed, err.Error(), nil)
	}
	jobs := file.Jobs()
	formatter.VerboseLog("Evaluating %d job(s) from %s", len(jobs), path)

	outcomes, err := batch.Run(cmd.Context(), arm, jobs, opts.Workers)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBatchFailed, err.Error(), nil)
	}

	result := BatchResult{
		Arm:      armInfo(arm, spec),
		Outcomes: outcomes,
		Total:    len(outcomes),
	}
	logger := opts.logger(formatter.GetErrWriter())
	for _, o := range outcomes {
		if o.Case == batch.CaseUnreachable {
			result.Unreachable++
			logger.Info("target unreachable", "job", o.Index, "distance", *o.Distance)
		}
	}

	return formatter.Success(result)
}
