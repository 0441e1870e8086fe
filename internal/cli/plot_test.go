package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotWritesSVG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "arm.svg")

	stdout, _, code := runCLI(t, "", "plot", "-o", out)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Wrote plot to "+out+"\n", stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "2-DOF Robot Arm")
	assert.Contains(t, svg, "End Effector")
	assert.Contains(t, svg, "(35.13, 55.59)")
	assert.Contains(t, svg, "θ1=40°, θ2=30°")
}

func TestPlotCustomTitleAndAngles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "arm.svg")

	_, _, code := runCLI(t, "", "plot", "0", "90", "--title", "Leg", "-o", out)
	require.Equal(t, ExitSuccess, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Leg")
	assert.Contains(t, string(data), "θ1=0°, θ2=90°")
}

func TestPlotIK(t *testing.T) {
	out := filepath.Join(t.TempDir(), "solved.svg")

	stdout, _, code := runCLI(t, "", "--format", "json", "plot", "--ik", "30,30", "-o", out)
	require.Equal(t, ExitSuccess, code)

	_, data := decodeResponse(t, stdout)
	assert.Equal(t, out, data["path"])
	end := data["end_effector"].(map[string]any)
	assert.InDelta(t, 30, end["x"], 1e-9)
	assert.InDelta(t, 30, end["y"], 1e-9)
	assert.FileExists(t, out)
}

func TestPlotIKUnreachable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "none.svg")

	stdout, _, code := runCLI(t, "", "plot", "--ik", "1000,1000", "-o", out)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "E201")
	assert.NoFileExists(t, out)
}

func TestPlotArgumentErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"angles and ik", []string{"plot", "10", "20", "--ik", "30,30", "-o", filepath.Join(dir, "a.svg")}},
		{"ik needs two values", []string{"plot", "--ik", "30", "-o", filepath.Join(dir, "b.svg")}},
		{"missing directory", []string{"plot", "-o", filepath.Join(dir, "missing", "c.svg")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, code := runCLI(t, "", tt.args...)
			assert.Equal(t, ExitCommandError, code)
			assert.Contains(t, stdout, "Error [")
		})
	}
}
