package kinematics

import (
	"errors"
	"fmt"
	"math"
)

// DOF is the number of joints of a planar two-link arm.
const DOF = 2

// ErrInvalidLength is returned by NewArm for a non-positive or non-finite link length.
var ErrInvalidLength = errors.New("link length must be a positive finite number")

// Reference configuration: femur and tibia of a leg, posed at 40° / 30°.
const (
	ReferenceL1 = 28.0
	ReferenceL2 = 40.0
)

// ReferenceAngles is the default pose of the reference arm.
var ReferenceAngles = JointAngles{Theta1: 40, Theta2: 30}

// Arm is an immutable two-link planar arm.
// The zero value is not usable; construct with NewArm.
type Arm struct {
	l1 float64
	l2 float64
}

// NewArm creates an arm with the given link lengths.
func NewArm(l1, l2 float64) (Arm, error) {
	if err := checkLength("l1", l1); err != nil {
		return Arm{}, err
	}
	if err := checkLength("l2", l2); err != nil {
		return Arm{}, err
	}
	return Arm{l1: l1, l2: l2}, nil
}

// MustNewArm is like NewArm but panics on invalid lengths.
func MustNewArm(l1, l2 float64) Arm {
	arm, err := NewArm(l1, l2)
	if err != nil {
		panic(err)
	}
	return arm
}

// ReferenceArm returns the L1=28, L2=40 arm.
func ReferenceArm() Arm {
	return Arm{l1: ReferenceL1, l2: ReferenceL2}
}

func checkLength(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s=%v: %w", name, v, ErrInvalidLength)
	}
	return nil
}

// L1 returns the length of the first link.
func (a Arm) L1() float64 { return a.l1 }

// L2 returns the length of the second link.
func (a Arm) L2() float64 { return a.l2 }

// DOF returns the number of joints.
func (a Arm) DOF() int { return DOF }

// Reach returns the fully extended length L1+L2.
func (a Arm) Reach() float64 { return a.l1 + a.l2 }

// Workspace returns the annulus of positions the end effector can reach.
func (a Arm) Workspace() Workspace {
	return Workspace{Inner: math.Abs(a.l1 - a.l2), Outer: a.l1 + a.l2}
}

func (a Arm) String() string {
	return fmt.Sprintf("Arm(L1=%g, L2=%g)", a.l1, a.l2)
}
