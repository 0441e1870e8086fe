package testutil

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/roach88/armkin/internal/kinematics"
)

// DefaultTolerance is the absolute tolerance used by the Assert helpers
// when tol is 0.
const DefaultTolerance = 1e-6

// AssertPointNear fails the test if got is not within tol of want on both axes.
func AssertPointNear(t testing.TB, want, got kinematics.Point2D, tol float64) {
	t.Helper()
	if tol == 0 {
		tol = DefaultTolerance
	}
	if !scalar.EqualWithinAbs(want.X, got.X, tol) || !scalar.EqualWithinAbs(want.Y, got.Y, tol) {
		t.Errorf("point mismatch: want %v, got (%g, %g), tolerance %g", want, got.X, got.Y, tol)
	}
}

// AssertAnglesNear fails the test if got is not within tol of want.
// Theta1 is compared modulo 360°.
func AssertAnglesNear(t testing.TB, want, got kinematics.JointAngles, tol float64) {
	t.Helper()
	if tol == 0 {
		tol = DefaultTolerance
	}
	if !scalar.EqualWithinAbs(0, WrapDegrees(want.Theta1-got.Theta1), tol) ||
		!scalar.EqualWithinAbs(want.Theta2, got.Theta2, tol) {
		t.Errorf("angles mismatch: want %v, got θ1=%g°, θ2=%g°, tolerance %g", want, got.Theta1, got.Theta2, tol)
	}
}

// WrapDegrees maps an angle to (-180, 180].
func WrapDegrees(d float64) float64 {
	for d <= -180 {
		d += 360
	}
	for d > 180 {
		d -= 360
	}
	return d
}
