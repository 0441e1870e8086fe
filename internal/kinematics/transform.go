package kinematics

import "github.com/go-gl/mathgl/mgl64"

// LinkTransform returns the homogeneous transform of one link: a rotation
// of thetaDeg about Z followed by a translation of length along the rotated
// X axis.
//
//	| c  -s  0  length·c |
//	| s   c  0  length·s |
//	| 0   0  1  0        |
//	| 0   0  0  1        |
func LinkTransform(thetaDeg, length float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(Radians(thetaDeg)).Mul4(mgl64.Translate3D(length, 0, 0))
}

// Transforms returns the base-to-joint-1 transform and the base-to-end-effector
// transform for the given joint angles.
func (a Arm) Transforms(theta1, theta2 float64) (joint1, end mgl64.Mat4) {
	t1 := LinkTransform(theta1, a.l1)
	t2 := LinkTransform(theta2, a.l2)
	return t1, t1.Mul4(t2)
}

// origin reads the translation column of a homogeneous transform.
func origin(m mgl64.Mat4) Point2D {
	return Point2D{X: m.At(0, 3), Y: m.At(1, 3)}
}
