package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Arm is the geometry under test.
	Arm ArmRef `yaml:"arm"`

	// Tolerance is the absolute tolerance for result expectations.
	// Zero means DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Flow contains the kinematics steps, executed in order.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ArmRef selects the arm either inline (L1, L2) or from a CUE spec file.
type ArmRef struct {
	L1 float64 `yaml:"l1,omitempty"`
	L2 float64 `yaml:"l2,omitempty"`

	// Spec is a CUE file or directory, relative to the scenario base path.
	Spec string `yaml:"spec,omitempty"`
	// Name selects an arm from Spec; optional when Spec defines one arm.
	Name string `yaml:"name,omitempty"`
}

// FlowStep is one kinematics invocation.
type FlowStep struct {
	// Invoke is the operation: forward, inverse or roundtrip.
	Invoke string `yaml:"invoke"`

	// Args are the operation inputs (theta1/theta2 or x/y).
	Args map[string]float64 `yaml:"args"`

	// Expect specifies the expected completion. If nil, only roundtrip
	// steps are checked (they must match).
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected completion behavior.
type ExpectClause struct {
	// Case is the expected output case.
	Case string `yaml:"case"`

	// Result is a subset of expected result values.
	Result map[string]float64 `yaml:"result,omitempty"`
}

// Assertion validates the trace.
type Assertion struct {
	// Type is trace_contains, trace_order or trace_count.
	Type string `yaml:"type"`

	// Invoke is the operation (trace_contains, trace_count).
	Invoke string `yaml:"invoke,omitempty"`

	// Case is the output case (trace_contains, trace_count).
	Case string `yaml:"case,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Invokes is the expected invocation order (trace_order).
	Invokes []string `yaml:"invokes,omitempty"`
}

// Operations.
const (
	InvokeForward   = "forward"
	InvokeInverse   = "inverse"
	InvokeRoundTrip = "roundtrip"
)

// Output cases.
const (
	CasePose        = "pose"
	CaseReachable   = "reachable"
	CaseUnreachable = "unreachable"
	CaseMatch       = "match"
	CaseMismatch    = "mismatch"
)

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// operation describes the args and cases of an invoke name.
type operation struct {
	args  []string
	cases []string
}

var operations = map[string]operation{
	InvokeForward:   {args: []string{"theta1", "theta2"}, cases: []string{CasePose}},
	InvokeInverse:   {args: []string{"x", "y"}, cases: []string{CaseReachable, CaseUnreachable}},
	InvokeRoundTrip: {args: []string{"theta1", "theta2"}, cases: []string{CaseMatch, CaseMismatch}},
}

var allCases = []string{CasePose, CaseReachable, CaseUnreachable, CaseMatch, CaseMismatch}

// LoadScenario reads and parses a scenario YAML file. Spec paths are
// resolved relative to the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving arm.spec relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if spec := scenario.Arm.Spec; spec != "" && !filepath.IsAbs(spec) && basePath != "" {
		scenario.Arm.Spec = filepath.Join(basePath, spec)
	}
	if spec := scenario.Arm.Spec; spec != "" {
		if _, err := os.Stat(spec); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: arm spec not found: %s", spec)
		}
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
// Unknown fields are rejected so typos surface as errors.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Arm.Spec == "" && (s.Arm.L1 <= 0 || s.Arm.L2 <= 0) {
		return fmt.Errorf("arm requires positive l1 and l2, or a spec")
	}
	if s.Arm.Spec != "" && (s.Arm.L1 != 0 || s.Arm.L2 != 0) {
		return fmt.Errorf("arm: spec and l1/l2 are mutually exclusive")
	}

	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *FlowStep) error {
	if step.Invoke == "" {
		return fmt.Errorf("flow[%d]: invoke is required", index)
	}
	op, ok := operations[step.Invoke]
	if !ok {
		return fmt.Errorf("flow[%d]: unknown invoke %q", index, step.Invoke)
	}

	for _, name := range op.args {
		if _, ok := step.Args[name]; !ok {
			return fmt.Errorf("flow[%d]: %s requires arg %q", index, step.Invoke, name)
		}
	}
	if len(step.Args) != len(op.args) {
		return fmt.Errorf("flow[%d]: %s accepts only args %v, got %v", index, step.Invoke, op.args, sortedKeys(step.Args))
	}

	if step.Expect != nil {
		if step.Expect.Case == "" {
			return fmt.Errorf("flow[%d].expect: case is required", index)
		}
		if !contains(op.cases, step.Expect.Case) {
			return fmt.Errorf("flow[%d].expect: case %q is not valid for %s (want one of %v)", index, step.Expect.Case, step.Invoke, op.cases)
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	if a.Invoke != "" {
		if _, ok := operations[a.Invoke]; !ok {
			return fmt.Errorf("assertions[%d]: unknown invoke %q", index, a.Invoke)
		}
	}
	if a.Case != "" && !contains(allCases, a.Case) {
		return fmt.Errorf("assertions[%d]: unknown case %q", index, a.Case)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Invoke == "" {
			return fmt.Errorf("assertions[%d]: invoke is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Invokes) == 0 {
			return fmt.Errorf("assertions[%d]: invokes list is required for trace_order", index)
		}
		for _, name := range a.Invokes {
			if _, ok := operations[name]; !ok {
				return fmt.Errorf("assertions[%d]: unknown invoke %q", index, name)
			}
		}
	case AssertTraceCount:
		if a.Invoke == "" && a.Case == "" {
			return fmt.Errorf("assertions[%d]: invoke or case is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
