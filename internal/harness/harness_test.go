package harness

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(src))
	require.NoError(t, err)
	return s
}

func TestRun_HiddenAppsAndUninstall(t *testing.T) {
	s := parse(t, `
name: hidden_apps
description: hide an app, browse hidden apps, uninstall
flow:
  - invoke: toggle_hidden
    args: {package: com.example.cafe}
    expect: {case: ok, result: {hidden: true, set_empty: false, dialog: HIDDEN}}
  - invoke: list_apps
    args: {intent: hidden}
    expect: {case: ok, result: {labels: [Café Finder], auto_launch: false}}
  - invoke: list_apps
    args: {query: caf}
    expect: {case: ok, result: {count: 0}}
  - invoke: uninstall
    args: {package: com.android.camera}
    expect: {case: PROTECTED_OPERATION, result: {notice: system app cannot be deleted}}
  - invoke: uninstall
    args: {package: com.example.cafe}
    expect: {case: ok}
assertions:
  - type: device_event
    event: "uninstall com.example.cafe as UserHandle{0}"
  - type: trace_count
    event: "uninstall com.android.camera as UserHandle{0}"
    count: 0
  - type: final_state
    table: prefs
    where: {key: FIRST_HIDE}
    expect: {value: false}
`)
	result, err := Run(t.Context(), s)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.True(t, result.Pass)
}

func TestRun_LaunchFailureUnderBothProfiles(t *testing.T) {
	s := parse(t, `
name: launch_failure
description: a launch that fails under the bound and the current profile
setup:
  - action: device
    args: {op: fail_launch, package: com.example.mail, profile: "UserHandle{10}"}
flow:
  - invoke: select_app
    args: {package: com.example.mail, profile: "UserHandle{10}"}
    expect: {case: LAUNCH_FAILURE, result: {notice: unable to open app}}
assertions:
  - type: trace_count
    event: "launch com.example.mail/com.example.mail.MainActivity as UserHandle{10}"
    count: 0
`)
	result, err := Run(t.Context(), s)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
}

func TestRun_ExpectationMismatchIsRecorded(t *testing.T) {
	s := parse(t, `
name: mismatch
description: wrong expectations fail the result, not the run
flow:
  - invoke: list_apps
    args: {query: ma}
    expect: {case: ok, result: {count: 2}}
  - invoke: select_app
    args: {package: com.example.none}
    expect: {case: ok}
assertions:
  - type: trace_contains
    action: list_apps
`)
	result, err := Run(t.Context(), s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "result count = 3, want 2")
	assert.Contains(t, result.Errors[1], "expected case ok, got NOT_FOUND")
}

func TestRun_SetupFailureAborts(t *testing.T) {
	s := parse(t, `
name: bad_setup
description: setup steps must succeed
setup:
  - action: assign_slot
    args: {slot: home-1, package: com.example.none}
flow:
  - invoke: home
assertions:
  - type: trace_contains
    action: home
`)
	_, err := Run(t.Context(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completed with NOT_FOUND")
}

func TestRun_BadArgsAbort(t *testing.T) {
	tests := []struct {
		name string
		step string
	}{
		{"unknown pref", "{invoke: set_pref, args: {name: volume, value: 3}}"},
		{"bad slot", "{invoke: open_slot, args: {slot: home-9}}"},
		{"missing package", "{invoke: select_app}"},
		{"bad duration", "{invoke: advance, args: {by: soon}}"},
		{"unknown gesture", "{invoke: gesture, args: {gesture: wiggle}}"},
		{"unknown dialog", "{invoke: dialog_shown, args: {dialog: NOPE}}"},
		{"unknown device op", "{invoke: device, args: {op: reboot}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parse(t, "name: n\ndescription: d\nflow: ["+tt.step+"]\nassertions: [{type: trace_order, actions: [home]}]")
			_, err := Run(t.Context(), s)
			require.ErrorIs(t, err, ErrBadArgs)
		})
	}
}

func TestRun_PrefsAndGestures(t *testing.T) {
	s := parse(t, `
name: prefs_and_gestures
description: preferences shape what gestures and slots do
start: "2026-03-10T14:00:00Z"
flow:
  - invoke: set_pref
    args: {name: swipe_left, value: false}
  - invoke: open_slot
    args: {slot: swipe-left}
    expect: {case: ok, result: {effect: none}}
  - invoke: set_pref
    args: {name: swipe_down, value: search}
  - invoke: gesture
    args: {gesture: swipe-down}
    expect: {case: ok, result: {effect: "opened system:search"}}
  - invoke: set_pref
    args: {name: home_apps, value: 2}
  - invoke: home
    expect: {case: ok, result: {slots: [home-1=, home-2=]}}
  - invoke: set_pref
    args: {name: home_apps, value: 9}
    expect: {case: INVALID_ARGUMENT}
assertions:
  - type: final_state
    table: prefs
    where: {key: HOME_APPS_NUM}
    expect: {value: 2}
  - type: final_state
    table: prefs
    where: {key: SWIPE_DOWN_ACTION}
    expect: {value: search}
  - type: device_event
    event: system search
`)
	result, err := Run(t.Context(), s)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
}

func TestRun_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := parse(t, minimalScenario)
	result, err := Run(t.Context(), s, WithLogger(log))
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Contains(t, buf.String(), "step completed")
}
