package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForwardKinematicsReference(t *testing.T) {
	pose := ReferenceArm().ForwardKinematics(40, 30)

	assert.InDelta(t, 21.449244407331385, pose.Joint1.X, 1e-9)
	assert.InDelta(t, 17.998053071223097, pose.Joint1.Y, 1e-9)
	assert.InDelta(t, 35.130050140358136, pose.EndEffector.X, 1e-9)
	assert.InDelta(t, 55.58575790265943, pose.EndEffector.Y, 1e-9)
}

func TestForwardKinematicsClosedForm(t *testing.T) {
	arm := MustNewArm(3.5, 1.25)
	angles := []JointAngles{
		{0, 0}, {90, 0}, {0, 90}, {-45, 135}, {400, -30}, {180, 180}, {-720, 12.5},
	}

	for _, a := range angles {
		t.Run(a.String(), func(t *testing.T) {
			t1, t12 := Radians(a.Theta1), Radians(a.Theta1+a.Theta2)
			pose := arm.Forward(a)

			assert.InDelta(t, 3.5*math.Cos(t1), pose.Joint1.X, 1e-12)
			assert.InDelta(t, 3.5*math.Sin(t1), pose.Joint1.Y, 1e-12)
			assert.InDelta(t, 3.5*math.Cos(t1)+1.25*math.Cos(t12), pose.EndEffector.X, 1e-12)
			assert.InDelta(t, 3.5*math.Sin(t1)+1.25*math.Sin(t12), pose.EndEffector.Y, 1e-12)
		})
	}
}

func TestForwardKinematicsStraightAndFolded(t *testing.T) {
	arm := ReferenceArm()

	straight := arm.ForwardKinematics(0, 0)
	assert.InDelta(t, 28.0, straight.Joint1.X, 1e-12)
	assert.InDelta(t, 68.0, straight.EndEffector.X, 1e-12)
	assert.InDelta(t, 0.0, straight.EndEffector.Y, 1e-12)

	folded := arm.ForwardKinematics(0, 180)
	assert.InDelta(t, -12.0, folded.EndEffector.X, 1e-12)
	assert.InDelta(t, 0.0, folded.EndEffector.Y, 1e-12)
}

func TestForwardKinematicsStaysInWorkspace(t *testing.T) {
	arm := ReferenceArm()
	ws := arm.Workspace()

	for theta1 := -360.0; theta1 <= 360; theta1 += 17.5 {
		for theta2 := -400.0; theta2 <= 400; theta2 += 13 {
			d := arm.ForwardKinematics(theta1, theta2).EndEffector.Norm()
			assert.LessOrEqual(t, d, ws.Outer+1e-9, "θ1=%v θ2=%v", theta1, theta2)
			assert.GreaterOrEqual(t, d, ws.Inner-1e-9, "θ1=%v θ2=%v", theta1, theta2)
		}
	}
}

func TestLinkTransform(t *testing.T) {
	m := LinkTransform(90, 2)

	// rotation block
	assert.InDelta(t, 0.0, m.At(0, 0), 1e-15)
	assert.InDelta(t, -1.0, m.At(0, 1), 1e-15)
	assert.InDelta(t, 1.0, m.At(1, 0), 1e-15)
	assert.InDelta(t, 0.0, m.At(1, 1), 1e-15)
	assert.Equal(t, 1.0, m.At(2, 2))
	assert.Equal(t, 1.0, m.At(3, 3))

	// translation along the rotated X axis
	assert.InDelta(t, 0.0, m.At(0, 3), 1e-15)
	assert.InDelta(t, 2.0, m.At(1, 3), 1e-15)
	assert.Equal(t, 0.0, m.At(2, 3))
}

func TestTransformsCompose(t *testing.T) {
	arm := ReferenceArm()
	t1, total := arm.Transforms(40, 30)

	assert.Equal(t, LinkTransform(40, 28), t1)
	assert.Equal(t, t1.Mul4(LinkTransform(30, 40)), total)
}
