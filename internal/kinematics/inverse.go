package kinematics

import "math"

// Solution is the outcome of inverse kinematics: Reachable or Unreachable.
type Solution interface {
	solution()
}

// Reachable carries the elbow-up joint angles that place the end effector
// on the target.
type Reachable struct {
	Angles JointAngles
}

// Unreachable reports a target outside the workspace annulus.
type Unreachable struct {
	Target    Point2D
	Distance  float64
	Workspace Workspace
}

func (Reachable) solution()   {}
func (Unreachable) solution() {}

// AnglesOf returns the angles of a Reachable solution.
func AnglesOf(s Solution) (JointAngles, bool) {
	r, ok := s.(Reachable)
	if !ok {
		return JointAngles{}, false
	}
	return r.Angles, true
}

// InverseKinematics solves for joint angles placing the end effector at (x, y).
//
// Targets with |L1-L2| <= d <= L1+L2 are reachable. The elbow angle comes from
// the law of cosines, clamped to [-1, 1] so boundary targets do not produce NaN.
// Only the +θ2 branch is returned.
func (a Arm) InverseKinematics(x, y float64) Solution {
	target := Point2D{X: x, Y: y}
	d := math.Sqrt(x*x + y*y)

	ws := a.Workspace()
	if !ws.containsDistance(d) {
		return Unreachable{Target: target, Distance: d, Workspace: ws}
	}

	cosTheta2 := (x*x + y*y - a.l1*a.l1 - a.l2*a.l2) / (2 * a.l1 * a.l2)
	cosTheta2 = clamp(cosTheta2, -1, 1)
	theta2 := math.Acos(cosTheta2)

	alpha := math.Atan2(y, x)
	beta := math.Atan2(a.l2*math.Sin(theta2), a.l1+a.l2*math.Cos(theta2))
	theta1 := alpha - beta

	return Reachable{Angles: JointAngles{Theta1: Degrees(theta1), Theta2: Degrees(theta2)}}
}

// Inverse is InverseKinematics for a Point2D target.
func (a Arm) Inverse(target Point2D) Solution {
	return a.InverseKinematics(target.X, target.Y)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
