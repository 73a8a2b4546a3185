// Package harness runs launcher scenarios written in YAML.
//
// A scenario drives one Launcher wired to a simulated device, an in-memory
// SQLite preference store and a controllable clock, then checks the trace
// and the final preference state.
//
// # Scenario Format
//
//	name: hide_first_app
//	description: "Hiding an app shows the one-time hint"
//	catalog: device.yaml        # optional, relative to the scenario file
//	start: 2026-03-10T14:00:00Z # optional clock start
//	config:
//	  categories: [Work]
//	setup:
//	  - action: assign_slot
//	    args: { slot: home-1, package: com.example.maps }
//	flow:
//	  - invoke: toggle_hidden
//	    args: { package: com.example.cafe }
//	    expect:
//	      case: ok
//	      result: { hidden: true, dialog: HIDDEN }
//	assertions:
//	  - type: trace_contains
//	    action: toggle_hidden
//	  - type: device_event
//	    event: "launch com.example.maps/com.example.maps.Nav as UserHandle{0}"
//	  - type: final_state
//	    table: slots
//	    where: { slot: home-1 }
//	    expect: { package: com.example.maps }
//
// # Trace
//
// Every step adds an invocation, the device events it caused, and a
// completion. A completion's case is "ok" or the error code of a failed
// operation (NOT_FOUND, LAUNCH_FAILURE, ...). Values are compared by their
// rendered form, so YAML lists match Go slices.
//
// # Assertion Types
//
//   - trace_contains: an action was invoked with matching args
//   - trace_order: actions were invoked in the given order
//   - trace_count: an action was invoked exactly N times
//   - device_event: the device journaled the given event
//   - final_state: a preferences, slots or funnel row holds the given values
//
// Golden traces live in testdata/golden/<name>.golden and are compared
// with goldie; regenerate with
//
//	go test ./internal/harness -update
package harness
