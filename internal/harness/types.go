package harness

import (
	"fmt"
	"strings"
)

// Trace event types.
const (
	EventInvocation = "invocation"
	EventCompletion = "completion"
	EventDevice     = "device"
)

// TraceEvent is one line of a scenario trace.
type TraceEvent struct {
	Type       string         `json:"type"`
	ActionURI  string         `json:"action_uri,omitempty"`
	Args       map[string]any `json:"args,omitempty"`
	OutputCase string         `json:"output_case,omitempty"`
	Result     map[string]any `json:"result,omitempty"`
	Detail     string         `json:"detail,omitempty"`
	Seq        int64          `json:"seq"`
}

// String renders the event as one golden-file line.
func (e TraceEvent) String() string {
	switch e.Type {
	case EventInvocation:
		return fmt.Sprintf("%03d invoke %s %s", e.Seq, e.ActionURI, render(e.Args))
	case EventCompletion:
		return fmt.Sprintf("%03d complete %s %s", e.Seq, e.OutputCase, render(e.Result))
	default:
		return fmt.Sprintf("%03d device %s", e.Seq, e.Detail)
	}
}

// render prints a value in a stable form; fmt sorts map keys.
func render(v any) string {
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		return "{}"
	}
	return fmt.Sprintf("%v", v)
}

// Result is the outcome of a scenario execution.
type Result struct {
	Pass   bool         `json:"pass"`
	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`

	seq int64
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{Pass: true, Trace: []TraceEvent{}, Errors: []string{}}
}

// AddError records a failure.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) next() int64 {
	r.seq++
	return r.seq
}

// AddInvocationTrace appends an invocation.
func (r *Result) AddInvocationTrace(action string, args map[string]any) {
	r.Trace = append(r.Trace, TraceEvent{Type: EventInvocation, ActionURI: action, Args: args, Seq: r.next()})
}

// AddCompletionTrace appends a completion.
func (r *Result) AddCompletionTrace(outputCase string, result map[string]any) {
	r.Trace = append(r.Trace, TraceEvent{Type: EventCompletion, OutputCase: outputCase, Result: result, Seq: r.next()})
}

// AddDeviceTrace appends a device journal event.
func (r *Result) AddDeviceTrace(detail string) {
	r.Trace = append(r.Trace, TraceEvent{Type: EventDevice, Detail: detail, Seq: r.next()})
}

// Render returns the trace as golden-file text.
func (r *Result) Render(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	for _, e := range r.Trace {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
