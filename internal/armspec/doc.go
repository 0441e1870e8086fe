// Package armspec loads arm geometry from CUE files.
//
// An arm spec file declares one or more arms under the arm struct:
//
//	arm: femur_tibia: {
//		l1:          28
//		l2:          40
//		description: "reference leg"
//		home: {theta1: 40, theta2: 30}
//	}
//
// Every arm is unified with the embedded schema (schema.cue), which requires
// positive link lengths and rejects unknown fields. Load accepts a single
// .cue file or a directory of them.
package armspec
