package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsYAML = `
forward:
  - {theta1: 40, theta2: 30}
  - {theta1: 0, theta2: 0}
inverse:
  - {x: 30, y: 30}
  - {x: 1000, y: 1000}
`

func TestBatchText(t *testing.T) {
	jobs := writeFile(t, t.TempDir(), "jobs.yaml", jobsYAML)

	stdout, _, code := runCLI(t, "", "batch", jobs, "--workers", "2")
	require.Equal(t, ExitSuccess, code)

	assert.Contains(t, stdout, "[0] FK θ1=40.00°, θ2=30.00° -> (35.13, 55.59)\n")
	assert.Contains(t, stdout, "[1] FK θ1=0.00°, θ2=0.00° -> (68.00, 0.00)\n")
	assert.Contains(t, stdout, "[2] IK (30.00, 30.00) -> θ1=-20.53°, θ2=105.11°\n")
	assert.Contains(t, stdout, "[3] IK (1000.00, 1000.00) -> unreachable\n")
	assert.Contains(t, stdout, "4 job(s), 1 unreachable\n")
}

func TestBatchJSON(t *testing.T) {
	jobs := writeFile(t, t.TempDir(), "jobs.yaml", jobsYAML)

	stdout, _, code := runCLI(t, "", "--format", "json", "batch", jobs)
	require.Equal(t, ExitSuccess, code)

	resp, data := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 4.0, data["total"])
	assert.Equal(t, 1.0, data["unreachable"])

	outcomes := data["outcomes"].([]any)
	require.Len(t, outcomes, 4)
	for i, o := range outcomes {
		assert.Equal(t, float64(i), o.(map[string]any)["index"])
	}
	last := outcomes[3].(map[string]any)
	assert.Equal(t, "unreachable", last["case"])
	assert.InDelta(t, 1414.213562, last["distance"], 1e-6)
}

func TestBatchErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.yaml", "forward: []\n")
	unknown := writeFile(t, dir, "unknown.yaml", "backward: [{theta1: 1, theta2: 2}]\n")

	for name, path := range map[string]string{
		"missing": dir + "/none.yaml",
		"empty":   empty,
		"unknown": unknown,
	} {
		t.Run(name, func(t *testing.T) {
			stdout, _, code := runCLI(t, "", "batch", path)
			assert.Equal(t, ExitCommandError, code)
			assert.Contains(t, stdout, "Error [E204]")
		})
	}
}
