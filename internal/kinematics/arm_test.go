package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArm(t *testing.T) {
	arm, err := NewArm(28, 40)
	require.NoError(t, err)
	assert.Equal(t, 28.0, arm.L1())
	assert.Equal(t, 40.0, arm.L2())
	assert.Equal(t, 2, arm.DOF())
	assert.Equal(t, 68.0, arm.Reach())
}

func TestNewArmInvalidLengths(t *testing.T) {
	tests := []struct {
		name   string
		l1, l2 float64
	}{
		{"zero l1", 0, 40},
		{"zero l2", 28, 0},
		{"negative l1", -1, 40},
		{"negative l2", 28, -3},
		{"nan", math.NaN(), 40},
		{"inf", 28, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArm(tt.l1, tt.l2)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidLength)
		})
	}
}

func TestMustNewArmPanics(t *testing.T) {
	assert.Panics(t, func() { MustNewArm(-1, 1) })
	assert.NotPanics(t, func() { MustNewArm(1, 1) })
}

func TestReferenceArm(t *testing.T) {
	arm := ReferenceArm()
	assert.Equal(t, ReferenceL1, arm.L1())
	assert.Equal(t, ReferenceL2, arm.L2())
	assert.Equal(t, "Arm(L1=28, L2=40)", arm.String())
}

func TestWorkspace(t *testing.T) {
	ws := ReferenceArm().Workspace()
	assert.Equal(t, 12.0, ws.Inner)
	assert.Equal(t, 68.0, ws.Outer)

	assert.True(t, ws.Contains(Point2D{X: 12, Y: 0}), "inner boundary is reachable")
	assert.True(t, ws.Contains(Point2D{X: 0, Y: 68}), "outer boundary is reachable")
	assert.True(t, ws.Contains(Point2D{X: 30, Y: 30}))
	assert.False(t, ws.Contains(Point2D{X: 11.999, Y: 0}))
	assert.False(t, ws.Contains(Point2D{X: 68.001, Y: 0}))
	assert.False(t, ws.Contains(Point2D{}))
}

func TestWorkspaceEqualLinks(t *testing.T) {
	ws := MustNewArm(10, 10).Workspace()
	assert.Equal(t, 0.0, ws.Inner)
	assert.True(t, ws.Contains(Point2D{}), "equal links can fold onto the base")
}

func TestAngleConversion(t *testing.T) {
	assert.InDelta(t, math.Pi, Radians(180), 1e-15)
	assert.InDelta(t, 90.0, Degrees(math.Pi/2), 1e-12)
	assert.InDelta(t, -720.0, Degrees(Radians(-720)), 1e-9)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "(21.45, 18.00)", Point2D{X: 21.449244, Y: 17.998053}.String())
	assert.Equal(t, "θ1=40.00°, θ2=30.00°", JointAngles{Theta1: 40, Theta2: 30}.String())
}
