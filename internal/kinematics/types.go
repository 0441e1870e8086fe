package kinematics

import (
	"fmt"
	"math"
)

// Point2D is a Cartesian position in the units of the link lengths.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Norm returns the distance from the origin.
func (p Point2D) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// JointAngles holds the two joint angles in degrees.
// Theta2 is relative to link 1.
type JointAngles struct {
	Theta1 float64 `json:"theta1" yaml:"theta1"`
	Theta2 float64 `json:"theta2" yaml:"theta2"`
}

func (j JointAngles) String() string {
	return fmt.Sprintf("θ1=%.2f°, θ2=%.2f°", j.Theta1, j.Theta2)
}

// Pose is the result of forward kinematics.
type Pose struct {
	Joint1      Point2D `json:"joint1"`
	EndEffector Point2D `json:"end_effector"`
}

// Workspace is the closed annulus Inner <= |p| <= Outer.
type Workspace struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// Contains reports whether p lies in the workspace, boundaries included.
func (w Workspace) Contains(p Point2D) bool {
	return w.containsDistance(p.Norm())
}

func (w Workspace) containsDistance(d float64) bool {
	return !(d > w.Outer || d < w.Inner)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
