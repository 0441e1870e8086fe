package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceScenario exercises every operation on the L1=28, L2=40 arm.
func referenceScenario() *Scenario {
	return &Scenario{
		Name:        "reference_arm",
		Description: "FK, IK and round trips on the reference arm",
		Arm:         ArmRef{L1: 28, L2: 40},
		Flow: []FlowStep{
			{Invoke: InvokeForward, Args: map[string]float64{"theta1": 40, "theta2": 30}},
			{Invoke: InvokeInverse, Args: map[string]float64{"x": 35.130050140358136, "y": 55.58575790265943}},
			{Invoke: InvokeInverse, Args: map[string]float64{"x": 1000, "y": 1000}},
			{Invoke: InvokeInverse, Args: map[string]float64{"x": 12, "y": 0}},
			{Invoke: InvokeRoundTrip, Args: map[string]float64{"theta1": 40, "theta2": 30}},
			{
				Invoke: InvokeRoundTrip,
				Args:   map[string]float64{"theta1": 40, "theta2": -30},
				Expect: &ExpectClause{Case: CaseMismatch},
			},
		},
	}
}

func TestRunWithGolden_ReferenceArm(t *testing.T) {
	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden_ReferenceArm -update
	result, err := RunWithGolden(t, referenceScenario())
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSnapshotDeterministic(t *testing.T) {
	first, err := Run(referenceScenario())
	require.NoError(t, err)
	second, err := Run(referenceScenario())
	require.NoError(t, err)

	a, err := Snapshot("reference_arm", first)
	require.NoError(t, err)
	b, err := Snapshot("reference_arm", second)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
	assert.Equal(t, byte('\n'), a[len(a)-1])
}

func TestSnapshotNoNegativeZero(t *testing.T) {
	result := NewResult()
	result.AddCompletionTrace(InvokeForward, CasePose, map[string]float64{"end_y": -1e-12}, 1)

	data, err := Snapshot("neg_zero", result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"end_y": 0`)
	assert.NotContains(t, string(data), "-0")
}
