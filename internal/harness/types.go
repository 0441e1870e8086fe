package harness

import "math"

// Trace event types.
const (
	EventInvocation = "invocation"
	EventCompletion = "completion"
)

// TraceEvent is an invocation or completion in the trace.
type TraceEvent struct {
	Type   string             `json:"type"`
	Invoke string             `json:"invoke"`
	Args   map[string]float64 `json:"args,omitempty"`
	Case   string             `json:"case,omitempty"`
	Result map[string]float64 `json:"result,omitempty"`
	Seq    int64              `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains all invocations and completions in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddInvocationTrace adds an invocation to the trace.
func (r *Result) AddInvocationTrace(invoke string, args map[string]float64, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   EventInvocation,
		Invoke: invoke,
		Args:   args,
		Seq:    seq,
	})
}

// AddCompletionTrace adds a completion to the trace. Result values are rounded.
func (r *Result) AddCompletionTrace(invoke, outputCase string, result map[string]float64, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   EventCompletion,
		Invoke: invoke,
		Case:   outputCase,
		Result: roundValues(result),
		Seq:    seq,
	})
}

// traceResolution is the rounding step of traced results.
const traceResolution = 1e6

func roundValues(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		r := math.Round(v*traceResolution) / traceResolution
		if r == 0 {
			r = 0 // drop negative zero
		}
		out[k] = r
	}
	return out
}
