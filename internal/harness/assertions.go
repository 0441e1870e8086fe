package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		if event.Type == EventCompletion {
			fmt.Fprintf(&buf, "  [%d] %s -> %s %v\n", event.Seq, event.Invoke, event.Case, event.Result)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks all assertions and returns failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

// matchCompletion reports whether a completion event matches invoke and case
// filters; empty filters match anything.
func matchCompletion(event TraceEvent, invoke, outputCase string) bool {
	if event.Type != EventCompletion {
		return false
	}
	if invoke != "" && event.Invoke != invoke {
		return false
	}
	if outputCase != "" && event.Case != outputCase {
		return false
	}
	return true
}

func describe(invoke, outputCase string) string {
	switch {
	case invoke != "" && outputCase != "":
		return fmt.Sprintf("%s -> %s", invoke, outputCase)
	case invoke != "":
		return invoke
	default:
		return "case " + outputCase
	}
}

// assertTraceContains checks that some step of the given invoke completed
// with the given case.
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if matchCompletion(event, a.Invoke, a.Case) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describe(a.Invoke, a.Case),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the invocations appear in order.
// Intervening invocations are allowed; repeated names must repeat in the trace.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, event := range trace {
		if next == len(a.Invokes) {
			break
		}
		if event.Type == EventInvocation && event.Invoke == a.Invokes[next] {
			next++
		}
	}
	if next == len(a.Invokes) {
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: strings.Join(a.Invokes, " → "),
		Actual:   fmt.Sprintf("matched %d of %d, missing %s", next, len(a.Invokes), a.Invokes[next]),
		Trace:    trace,
	}
}

// assertTraceCount checks the number of matching completions.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if matchCompletion(event, a.Invoke, a.Case) {
			count++
		}
	}
	if count == a.Count {
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%s exactly %d time(s)", describe(a.Invoke, a.Case), a.Count),
		Actual:   fmt.Sprintf("found %d time(s)", count),
		Trace:    trace,
	}
}
