package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"cuelang.org/go/cue/token"

	"github.com/roach88/armkin/internal/armspec"
	"github.com/roach88/armkin/internal/i18n"
	"github.com/roach88/armkin/internal/kinematics"
	"github.com/roach88/armkin/internal/render"
)

// ArmInfo describes the arm a command ran against.
type ArmInfo struct {
	Name string  `json:"name,omitempty"`
	L1   float64 `json:"l1"`
	L2   float64 `json:"l2"`
	DOF  int     `json:"dof"`
}

func armInfo(arm kinematics.Arm, spec *armspec.Spec) ArmInfo {
	info := ArmInfo{L1: arm.L1(), L2: arm.L2(), DOF: arm.DOF()}
	if spec != nil {
		info.Name = spec.Name
	}
	return info
}

// SpecPosition locates an error in a CUE file.
type SpecPosition struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func specPosition(pos token.Pos) *SpecPosition {
	if !pos.IsValid() {
		return nil
	}
	return &SpecPosition{File: pos.Filename(), Line: pos.Line(), Column: pos.Column()}
}

// reportArmError reports a failure to resolve the arm as a command error.
func reportArmError(f *OutputFormatter, err error) error {
	var loadErr *armspec.LoadError
	if errors.As(err, &loadErr) {
		var details any
		if pos := specPosition(loadErr.Pos); pos != nil {
			details = pos
		}
		return f.Fail(ExitCommandError, loadErr.Code, loadErr.Message, details)
	}
	return f.Fail(ExitCommandError, armspec.ErrCodeGeneric, err.Error(), nil)
}

// parseFloats parses positional numeric arguments, reporting the first
// malformed one in the user's language.
func parseFloats(f *OutputFormatter, args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeInvalidArgs, f.printer().Sprintf(i18n.MsgInvalidNumber, arg), nil)
		}
		values[i] = v
	}
	return values, nil
}

// UnreachableDetails is the JSON detail of an unreachable target.
type UnreachableDetails struct {
	Target   kinematics.Point2D `json:"target"`
	Distance float64            `json:"distance"`
	Inner    float64            `json:"inner"`
	Outer    float64            `json:"outer"`
}

func unreachableDetails(u kinematics.Unreachable) UnreachableDetails {
	return UnreachableDetails{
		Target:   u.Target,
		Distance: u.Distance,
		Inner:    u.Workspace.Inner,
		Outer:    u.Workspace.Outer,
	}
}

func logUnreachable(logger *slog.Logger, u kinematics.Unreachable) {
	logger.Info("target unreachable",
		"x", u.Target.X,
		"y", u.Target.Y,
		"distance", u.Distance,
		"inner", u.Workspace.Inner,
		"outer", u.Workspace.Outer,
	)
}

// writePlot renders the arm at angles into an SVG file.
func writePlot(path string, arm kinematics.Arm, angles kinematics.JointAngles, opts render.Options) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plot file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing plot file: %w", cerr)
		}
	}()

	if err := render.SVG(file, arm, angles, opts); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}
	return nil
}
