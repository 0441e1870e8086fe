// Package harness runs conformance scenarios against the kinematics core.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: reference_arm
//	description: "FK/IK on the L1=28, L2=40 arm"
//	arm: {l1: 28, l2: 40}       # or {spec: arms.cue, name: femur_tibia}
//	tolerance: 0.01             # optional, default 1e-6
//	flow:
//	  - invoke: forward
//	    args: {theta1: 40, theta2: 30}
//	    expect:
//	      case: pose
//	      result: {end_x: 35.13, end_y: 55.59}
//	  - invoke: inverse
//	    args: {x: 1000, y: 1000}
//	    expect: {case: unreachable}
//	  - invoke: roundtrip
//	    args: {theta1: 40, theta2: 30}
//	assertions:
//	  - type: trace_count
//	    case: unreachable
//	    count: 1
//
// # Operations
//
//   - forward: args theta1, theta2; case pose; result joint1_x, joint1_y, end_x, end_y
//   - inverse: args x, y; case reachable (result theta1, theta2) or
//     unreachable (result distance)
//   - roundtrip: args theta1, theta2; forward then inverse; case match or
//     mismatch; result theta1, theta2, error. Without an expect clause a
//     roundtrip step must match.
//
// Result expectations are a subset match within the scenario tolerance.
// theta1 is compared modulo 360°.
//
// # Assertion Types
//
//   - trace_contains: an invocation of invoke completed with case (if given)
//   - trace_order: invocations appear in the listed order
//   - trace_count: number of completions with case (or invocations of invoke)
//
// # Deterministic Traces
//
// Every step records an invocation and a completion event numbered by a
// testutil.Sequence. Results are rounded to 1e-6 so golden files do not
// depend on the last bits of libm.
package harness
