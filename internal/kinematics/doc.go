// Package kinematics implements forward and inverse kinematics for a
// two-link planar arm.
//
// The arm is anchored at the origin. Joint 1 rotates link 1 (length L1)
// about the base; joint 2 rotates link 2 (length L2) relative to link 1.
// Angles are in degrees everywhere in the public API.
//
// # Forward Kinematics
//
// ForwardKinematics composes one homogeneous transform per link and reads
// the joint 1 and end effector positions from the translation columns:
//
//	arm := kinematics.ReferenceArm()
//	pose := arm.ForwardKinematics(40, 30)
//	// pose.Joint1      ≈ (21.45, 18.00)
//	// pose.EndEffector ≈ (35.13, 55.59)
//
// # Inverse Kinematics
//
// InverseKinematics returns a Solution, which is either Reachable or
// Unreachable. Callers switch on the concrete type:
//
//	switch s := arm.InverseKinematics(x, y).(type) {
//	case kinematics.Reachable:
//	    use(s.Angles)
//	case kinematics.Unreachable:
//	    report(s.Distance, s.Workspace)
//	}
//
// Only the elbow-up branch (θ2 in [0°, 180°]) is ever returned. Both
// workspace boundaries are reachable.
package kinematics
