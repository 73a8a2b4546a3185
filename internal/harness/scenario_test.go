package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScenario = `
name: minimal
description: one step
flow:
  - invoke: home
assertions:
  - type: trace_contains
    action: home
`

func TestLoadScenario_ValidFile(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "home_slots.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "home_slots", s.Name)
	assert.Len(t, s.Setup, 2)
	assert.Equal(t, "assign_slot", s.Setup[0].Action)
	assert.Equal(t, "home-1", s.Setup[0].Args["slot"])
	assert.Equal(t, "home", s.Flow[0].Invoke)
	require.NotNil(t, s.Flow[1].Args)
	assert.Nil(t, s.Flow[1].Expect)
	assert.Len(t, s.Assertions, 4)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_CatalogRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	catalog := `
current_profile: "UserHandle{0}"
profiles:
  - id: "UserHandle{0}"
    apps:
      - label: Notes
        package: com.example.notes
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "device.yaml"), []byte(catalog), 0o644))
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: device.yaml\n"+minimalScenario), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "device.yaml"), s.Catalog)

	s.Flow = []FlowStep{{Invoke: "list_apps"}}
	s.Assertions = []Assertion{{Type: AssertTraceContains, Action: "list_apps"}}
	result, err := Run(t.Context(), s)
	require.NoError(t, err)
	assert.Contains(t, result.Render(s.Name), "labels:[Notes]")
}

func TestLoadScenario_MissingCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: absent.yaml\n"+minimalScenario), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog")
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\nflow: [{invoke: home}]\nassertions: [{type: trace_contains, action: home}]",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\nflow: [{invoke: home}]\nassertions: [{type: trace_contains, action: home}]",
			want: "description is required",
		},
		{
			name: "empty flow",
			yaml: "name: n\ndescription: d\nflow: []\nassertions: [{type: trace_contains, action: home}]",
			want: "flow list is required",
		},
		{
			name: "no assertions",
			yaml: "name: n\ndescription: d\nflow: [{invoke: home}]",
			want: "assertions list is required",
		},
		{
			name: "unknown action",
			yaml: "name: n\ndescription: d\nflow: [{invoke: teleport}]\nassertions: [{type: trace_contains, action: home}]",
			want: `unknown action "teleport"`,
		},
		{
			name: "unknown setup action",
			yaml: "name: n\ndescription: d\nsetup: [{action: teleport}]\nflow: [{invoke: home}]\nassertions: [{type: trace_contains, action: home}]",
			want: `setup[0]: unknown action "teleport"`,
		},
		{
			name: "expect without case",
			yaml: "name: n\ndescription: d\nflow: [{invoke: home, expect: {result: {}}}]\nassertions: [{type: trace_contains, action: home}]",
			want: "case is required",
		},
		{
			name: "unknown field",
			yaml: "name: n\ndescription: d\nflows: []\n",
			want: "failed to parse YAML",
		},
		{
			name: "bad start",
			yaml: "name: n\ndescription: d\nstart: yesterday\nflow: [{invoke: home}]\nassertions: [{type: trace_contains, action: home}]",
			want: "start",
		},
		{
			name: "unknown table",
			yaml: "name: n\ndescription: d\nflow: [{invoke: home}]\nassertions: [{type: final_state, table: users, expect: {a: 1}}]",
			want: "table must be one of",
		},
		{
			name: "trace_order without actions",
			yaml: "name: n\ndescription: d\nflow: [{invoke: home}]\nassertions: [{type: trace_order}]",
			want: "actions list is required",
		},
		{
			name: "device_event without event",
			yaml: "name: n\ndescription: d\nflow: [{invoke: home}]\nassertions: [{type: device_event}]",
			want: "event is required",
		},
		{
			name: "unknown assertion",
			yaml: "name: n\ndescription: d\nflow: [{invoke: home}]\nassertions: [{type: vibes}]",
			want: `unknown assertion type "vibes"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScenario_StartTime(t *testing.T) {
	s := &Scenario{}
	start, err := s.StartTime()
	require.NoError(t, err)
	assert.Equal(t, DefaultStart, start)

	s.Start = "2027-01-01T09:30:00Z"
	start, err = s.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 1, 1, 9, 30, 0, 0, time.UTC), start)
}

func TestActionNames_Sorted(t *testing.T) {
	names := ActionNames()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "list_apps")
	assert.Contains(t, names, "check_funnel")
}
