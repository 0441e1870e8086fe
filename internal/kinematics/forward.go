package kinematics

// ForwardKinematics returns the joint 1 and end effector positions for the
// given joint angles in degrees. Any real angle is accepted.
func (a Arm) ForwardKinematics(theta1, theta2 float64) Pose {
	t1, total := a.Transforms(theta1, theta2)
	return Pose{
		Joint1:      origin(t1),
		EndEffector: origin(total),
	}
}

// Forward is ForwardKinematics for a JointAngles value.
func (a Arm) Forward(angles JointAngles) Pose {
	return a.ForwardKinematics(angles.Theta1, angles.Theta2)
}
