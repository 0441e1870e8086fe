package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenarioYAML = `
name: reference_arm
description: "FK/IK on the reference arm"
arm: {l1: 28, l2: 40}
tolerance: 0.01
flow:
  - invoke: forward
    args: {theta1: 40, theta2: 30}
    expect:
      case: pose
      result: {end_x: 35.13, end_y: 55.59}
  - invoke: inverse
    args: {x: 1000, y: 1000}
    expect: {case: unreachable}
assertions:
  - type: trace_count
    case: unreachable
    count: 1
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(validScenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "reference_arm", s.Name)
	assert.Equal(t, ArmRef{L1: 28, L2: 40}, s.Arm)
	assert.Equal(t, 0.01, s.Tolerance)
	require.Len(t, s.Flow, 2)
	assert.Equal(t, InvokeForward, s.Flow[0].Invoke)
	assert.Equal(t, map[string]float64{"theta1": 40, "theta2": 30}, s.Flow[0].Args)
	require.NotNil(t, s.Flow[0].Expect)
	assert.Equal(t, CasePose, s.Flow[0].Expect.Case)
	assert.Equal(t, 55.59, s.Flow[0].Expect.Result["end_y"])
	require.Len(t, s.Assertions, 1)
	assert.Equal(t, AssertTraceCount, s.Assertions[0].Type)
}

func TestParseScenarioRejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: "typo in flow"
arm: {l1: 1, l2: 1}
flows:
  - invoke: forward
    args: {theta1: 0, theta2: 0}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\narm: {l1: 1, l2: 1}\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}}]\n",
			wantErr: "description is required",
		},
		{
			name:    "missing arm",
			yaml:    "name: n\ndescription: d\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}}]\n",
			wantErr: "arm requires positive l1 and l2",
		},
		{
			name:    "spec and lengths",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1, spec: a.cue}\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}}]\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "negative tolerance",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\ntolerance: -1\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}}]\n",
			wantErr: "tolerance must be non-negative",
		},
		{
			name:    "empty flow",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: []\n",
			wantErr: "flow list is required",
		},
		{
			name:    "unknown invoke",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: jacobian, args: {}}]\n",
			wantErr: `unknown invoke "jacobian"`,
		},
		{
			name:    "missing arg",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: inverse, args: {x: 1}}]\n",
			wantErr: `inverse requires arg "y"`,
		},
		{
			name:    "extra arg",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: inverse, args: {x: 1, y: 1, z: 1}}]\n",
			wantErr: "accepts only args",
		},
		{
			name:    "expect without case",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}, expect: {result: {end_x: 2}}}]\n",
			wantErr: "case is required",
		},
		{
			name:    "case for wrong invoke",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}, expect: {case: reachable}}]\n",
			wantErr: `case "reachable" is not valid for forward`,
		},
		{
			name:    "unknown assertion",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}}]\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "trace_order without invokes",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}}]\nassertions: [{type: trace_order}]\n",
			wantErr: "invokes list is required",
		},
		{
			name:    "trace_count without filter",
			yaml:    "name: n\ndescription: d\narm: {l1: 1, l2: 1}\nflow: [{invoke: forward, args: {theta1: 0, theta2: 0}}]\nassertions: [{type: trace_count, count: 1}]\n",
			wantErr: "invoke or case is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarioResolvesSpecPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arms.cue"), []byte("arm: leg: {l1: 28, l2: 40}\n"), 0644))

	scenarioPath := filepath.Join(dir, "leg.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(`
name: leg
description: "arm from CUE"
arm: {spec: arms.cue, name: leg}
flow:
  - invoke: roundtrip
    args: {theta1: 10, theta2: 20}
`), 0644))

	s, err := LoadScenario(scenarioPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "arms.cue"), s.Arm.Spec)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestLoadScenarioMissingSpec(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "leg.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(`
name: leg
description: "arm from CUE"
arm: {spec: nowhere.cue}
flow:
  - invoke: forward
    args: {theta1: 0, theta2: 0}
`), 0644))

	_, err := LoadScenario(scenarioPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arm spec not found")
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
