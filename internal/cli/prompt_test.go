package cli

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestPromptFK(t *testing.T) {
	stdout, _, code := runCLI(t, "fk\n", "prompt")
	require.Equal(t, ExitSuccess, code)
	newGoldie(t).Assert(t, "prompt_fk", []byte(stdout))
}

func TestPromptIKUnreachableIndonesian(t *testing.T) {
	stdout, _, code := runCLI(t, "IK\n1000\n1000\n", "--lang", "id", "prompt")
	require.Equal(t, ExitSuccess, code)
	newGoldie(t).Assert(t, "prompt_ik_unreachable_id", []byte(stdout))
}

func TestPromptIndonesianFK(t *testing.T) {
	stdout, _, code := runCLI(t, "fk\n", "--lang", "id", "--l1", "1500", "prompt")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "L1=1500, L2=40, DoF=2\n")
	assert.Contains(t, stdout, "Diketahui: θ1=40°, θ2=30°\n")
	assert.NotContains(t, stdout, ",00")
}

func TestPromptIK(t *testing.T) {
	stdout, _, code := runCLI(t, " ik \n30\n30\n", "prompt")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "FK/IK? Target X: Target Y: θ1=-20.53°, θ2=105.11°\n")
}

func TestPromptInvalidMode(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", "FK/IK? invalid input\n"},
		{"id", "FK/IK? Input tidak valid\n"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			stdout, _, code := runCLI(t, "jacobian\n", "--lang", tt.lang, "prompt")
			assert.Equal(t, ExitSuccess, code)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestPromptInvalidNumber(t *testing.T) {
	stdout, _, code := runCLI(t, "ik\nthirty\n", "prompt")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stdout, "Error [E202]: invalid number")
}

func TestPromptEOF(t *testing.T) {
	stdout, _, code := runCLI(t, "", "prompt")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stdout, "unexpected end of input")
}

func TestPromptRejectsJSON(t *testing.T) {
	stdout, _, code := runCLI(t, "fk\n", "--format", "json", "prompt")
	assert.Equal(t, ExitCommandError, code)

	resp, _ := decodeResponse(t, stdout)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidArgs, resp.Error.Code)
}

func TestPromptPlot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prompt.svg")

	stdout, _, code := runCLI(t, "fk\n", "prompt", "--plot", out)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Wrote plot to "+out)
	assert.FileExists(t, out)
}

func TestPromptUsesSpecHome(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "arms.cue", `arm: leg: {l1: 10, l2: 10, home: {theta1: 0, theta2: 90}}`)

	stdout, _, code := runCLI(t, "fk\n", "--spec", spec, "prompt")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "L1=10, L2=10, DoF=2\n")
	assert.Contains(t, stdout, "Given: θ1=0°, θ2=90°\n")
	assert.Contains(t, stdout, "End Effector: (10.00, 10.00)\n")
}
