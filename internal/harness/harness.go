package harness

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/roach88/armkin/internal/armspec"
	"github.com/roach88/armkin/internal/kinematics"
	"github.com/roach88/armkin/internal/testutil"
)

// DefaultTolerance is used when a scenario does not set one.
const DefaultTolerance = 1e-6

// Harness executes the flow of one scenario against one arm.
type Harness struct {
	arm       kinematics.Arm
	tolerance float64
	seq       *testutil.Sequence
	logger    *slog.Logger
}

// Run executes a scenario with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, nil)
}

// RunWithLogger executes a scenario and returns the result.
//
// Execution flow:
// 1. Resolve the arm (inline lengths or CUE spec)
// 2. Execute flow steps, recording an invocation and completion per step
// 3. Validate expect clauses
// 4. Evaluate assertions against the trace
//
// An error is returned only when the scenario cannot run; failed
// expectations are reported through Result.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	arm, err := ResolveArm(scenario.Arm)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve arm: %w", err)
	}

	tol := scenario.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}

	h := &Harness{
		arm:       arm,
		tolerance: tol,
		seq:       testutil.NewSequence(),
		logger:    logger.With("scenario", scenario.Name),
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		h.executeStep(i, step, result)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// ResolveArm builds the arm referenced by a scenario.
func ResolveArm(ref ArmRef) (kinematics.Arm, error) {
	if ref.Spec == "" {
		return kinematics.NewArm(ref.L1, ref.L2)
	}

	loaded, errs := armspec.Load(ref.Spec, armspec.LoadModeFailFast)
	if len(errs) > 0 {
		return kinematics.Arm{}, fmt.Errorf("loading arm spec %s: %w", ref.Spec, errs[0])
	}
	spec, err := armspec.Select(loaded.Specs, ref.Name)
	if err != nil {
		return kinematics.Arm{}, err
	}
	return spec.Arm, nil
}

// executeStep invokes one operation, traces it and checks its expect clause.
func (h *Harness) executeStep(index int, step FlowStep, result *Result) {
	result.AddInvocationTrace(step.Invoke, step.Args, h.seq.Next())

	outputCase, values := h.invoke(step)

	result.AddCompletionTrace(step.Invoke, outputCase, values, h.seq.Next())

	h.logger.Debug("step completed",
		"step", index,
		"invoke", step.Invoke,
		"case", outputCase,
	)

	expect := step.Expect
	if expect == nil {
		if step.Invoke == InvokeRoundTrip && outputCase != CaseMatch {
			result.AddError(fmt.Sprintf("flow[%d] roundtrip: angles %v did not survive forward+inverse (result %v)",
				index, step.Args, values))
		}
		return
	}

	if expect.Case != outputCase {
		result.AddError(fmt.Sprintf("flow[%d] %s: expected case %q, got %q", index, step.Invoke, expect.Case, outputCase))
		return
	}

	for _, key := range sortedKeys(expect.Result) {
		want := expect.Result[key]
		got, ok := values[key]
		if !ok {
			result.AddError(fmt.Sprintf("flow[%d] %s: result has no field %q", index, step.Invoke, key))
			continue
		}
		if !h.near(key, want, got) {
			result.AddError(fmt.Sprintf("flow[%d] %s: %s expected %g, got %g (tolerance %g)",
				index, step.Invoke, key, want, got, h.tolerance))
		}
	}
}

// invoke runs the kinematics operation and returns its case and result values.
func (h *Harness) invoke(step FlowStep) (string, map[string]float64) {
	args := step.Args

	switch step.Invoke {
	case InvokeForward:
		pose := h.arm.ForwardKinematics(args["theta1"], args["theta2"])
		return CasePose, poseValues(pose)

	case InvokeInverse:
		switch s := h.arm.InverseKinematics(args["x"], args["y"]).(type) {
		case kinematics.Reachable:
			return CaseReachable, angleValues(s.Angles)
		case kinematics.Unreachable:
			h.logger.Info("target unreachable",
				"x", s.Target.X,
				"y", s.Target.Y,
				"distance", s.Distance,
				"inner", s.Workspace.Inner,
				"outer", s.Workspace.Outer,
			)
			return CaseUnreachable, map[string]float64{"distance": s.Distance}
		}

	case InvokeRoundTrip:
		in := kinematics.JointAngles{Theta1: args["theta1"], Theta2: args["theta2"]}
		end := h.arm.Forward(in).EndEffector
		angles, ok := kinematics.AnglesOf(h.arm.Inverse(end))
		if !ok {
			return CaseMismatch, map[string]float64{"end_x": end.X, "end_y": end.Y}
		}

		values := angleValues(angles)
		values["error"] = math.Max(
			math.Abs(testutil.WrapDegrees(angles.Theta1-in.Theta1)),
			math.Abs(angles.Theta2-in.Theta2),
		)
		if values["error"] > h.tolerance {
			return CaseMismatch, values
		}
		return CaseMatch, values
	}

	// unreachable: steps are validated when the scenario is parsed
	panic(fmt.Sprintf("harness: unknown invoke %q", step.Invoke))
}

// near compares a result value; theta1 is compared modulo 360°.
func (h *Harness) near(key string, want, got float64) bool {
	if key == "theta1" {
		return scalar.EqualWithinAbs(0, testutil.WrapDegrees(want-got), h.tolerance)
	}
	return scalar.EqualWithinAbs(want, got, h.tolerance)
}

func poseValues(p kinematics.Pose) map[string]float64 {
	return map[string]float64{
		"joint1_x": p.Joint1.X,
		"joint1_y": p.Joint1.Y,
		"end_x":    p.EndEffector.X,
		"end_y":    p.EndEffector.Y,
	}
}

func angleValues(a kinematics.JointAngles) map[string]float64 {
	return map[string]float64{
		"theta1": a.Theta1,
		"theta2": a.Theta2,
	}
}
