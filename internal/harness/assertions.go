package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/launchcore/internal/apps"
	"github.com/roach88/launchcore/internal/prefs"
)

// Tables readable by final_state.
var stateTables = []string{"prefs", "slots", "funnel"}

func isKnownTable(t string) bool {
	for _, s := range stateTables {
		if s == t {
			return true
		}
	}
	return false
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  %s\n", event)
		}
	}
	return buf.String()
}

func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if event.Type == EventInvocation && event.ActionURI == a.Action && matchArgs(event.Args, a.Args) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("action %s with args %v", a.Action, a.Args),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that actions were first invoked in the given
// order. Intervening events are allowed.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if event.Type != EventInvocation {
			continue
		}
		if _, seen := positions[event.ActionURI]; !seen {
			positions[event.ActionURI] = i + 1
		}
	}

	for _, action := range a.Actions {
		if positions[action] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all actions present: %v", a.Actions),
				Actual:   fmt.Sprintf("missing action: %s", action),
				Trace:    trace,
			}
		}
	}
	for i := 1; i < len(a.Actions); i++ {
		prev, curr := a.Actions[i-1], a.Actions[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("actions in order: %v", a.Actions),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount counts invocations of Action, or device events equal to
// Event.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		switch {
		case a.Action != "" && event.Type == EventInvocation && event.ActionURI == a.Action:
			count++
		case a.Event != "" && event.Type == EventDevice && event.Detail == a.Event:
			count++
		}
	}
	if count != a.Count {
		what := a.Action
		if what == "" {
			what = a.Event
		}
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, what),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

func assertDeviceEvent(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if event.Type == EventDevice && event.Detail == a.Event {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertDeviceEvent,
		Expected: fmt.Sprintf("device event %q", a.Event),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertFinalState reads one row from a state table and subset-matches it:
//
//	prefs   where {key}   -> {value}
//	slots   where {slot}  -> {label, package, profile, activity, category}
//	funnel  (no where)    -> {state, wallpaper_msg_shown, rate_clicked, daily_wallpaper}
func assertFinalState(actx *AssertionContext, a Assertion) error {
	row, err := stateRow(actx, a)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("row in %s where %s", a.Table, formatWhereClause(a.Where)),
			Actual:   err.Error(),
		}
	}
	keys := make([]string, 0, len(a.Expect))
	for k := range a.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		want := a.Expect[key]
		got, ok := row[key]
		if !ok {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   fmt.Sprintf("field %q not present in %s", key, a.Table),
			}
		}
		if !valuesEqual(got, want) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q = %v", key, want),
				Actual:   fmt.Sprintf("field %q = %v", key, got),
			}
		}
	}
	return nil
}

func stateRow(actx *AssertionContext, a Assertion) (map[string]any, error) {
	ctx := actx.Ctx
	switch a.Table {
	case "prefs":
		key, _ := a.Where["key"].(string)
		if key == "" {
			return nil, fmt.Errorf("prefs lookup needs where.key")
		}
		v, ok, err := actx.Prefs.Raw(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("row not found")
		}
		return map[string]any{"value": v}, nil

	case "slots":
		name, _ := a.Where["slot"].(string)
		slot, err := apps.ParseSlot(name)
		if err != nil {
			return nil, err
		}
		rec, err := actx.Prefs.Slot(ctx, slot)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"label":    rec.Label,
			"package":  rec.Package,
			"profile":  string(rec.Profile),
			"activity": rec.Activity,
			"category": rec.Category,
		}, nil

	case "funnel":
		rec, err := actx.Prefs.Funnel(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"state":               rec.State,
			"wallpaper_msg_shown": rec.WallpaperMsgShown,
			"rate_clicked":        rec.RateClicked,
			"daily_wallpaper":     rec.DailyWallpaper,
		}, nil
	}
	return nil, fmt.Errorf("unknown table %q", a.Table)
}

func formatWhereClause(where map[string]any) string {
	if len(where) == 0 {
		return "(no conditions)"
	}
	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// matchArgs checks that actual holds every expected key (subset match).
func matchArgs(actual, expected map[string]any) bool {
	for key, want := range expected {
		got, ok := actual[key]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// valuesEqual compares by rendered form so that YAML values ([]any, int)
// match Go results ([]string, int, bool).
func valuesEqual(actual, expected any) bool {
	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

// AssertionContext gives final_state access to the scenario's world.
type AssertionContext struct {
	Ctx   context.Context
	Prefs *prefs.Prefs
}

// EvaluateAssertions evaluates every assertion and returns the failure
// messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertDeviceEvent:
			err = assertDeviceEvent(result.Trace, a)
		case AssertFinalState:
			if actx == nil || actx.Prefs == nil {
				err = fmt.Errorf("assertion[%d]: final_state requires a preference store", i)
			} else {
				err = assertFinalState(actx, a)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
