package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{
		"Type A (4 v 4)",
		"Type B (4 v 4 v 4)",
		"Type C (5 v 5)",
		"Type D (5 v 5 v 5)",
	}, c.Names())

	f, ok := c.Get("Type B (4 v 4 v 4)")
	require.True(t, ok)
	require.Len(t, f.Stages, 11)

	group, ok := f.Stages[7].(engine.MultiStage)
	require.True(t, ok)
	assert.Equal(t, "Group Attack and Defend", group.Label)
	require.Len(t, group.Participants, 3)
	assert.Equal(t, engine.Participant{Speaker: "Team C", Team: engine.TeamC, Duration: 300}, group.Participants[2])

	last := f.Stages[len(f.Stages)-1].(engine.SingleStage)
	assert.Equal(t, engine.SingleStage{Speaker: "C4", Label: "Conclude", Duration: 240, Team: engine.TeamC}, last)

	_, ok = c.Get("Type Z")
	assert.False(t, ok)
}

func TestNamesIsACopy(t *testing.T) {
	c := Default()
	names := c.Names()
	names[0] = "changed"
	assert.Equal(t, "Type A (4 v 4)", c.Names()[0])
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	f := engine.Format{Name: "x", Stages: []engine.Stage{engine.SingleStage{Speaker: "A1", Duration: 1, Team: engine.TeamA}}}
	_, err := New(f, f)
	require.ErrorIs(t, err, ErrDuplicateFormat)
}

func TestYAMLRoundTrip(t *testing.T) {
	raw, err := Marshal(Default().Formats())
	require.NoError(t, err)

	parsed, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Default().Formats(), parsed.Formats())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
formats:
  - name: Short
    stages:
      - kind: single
        speaker: A1
        label: Opening
        team: A
        seconds: 90
      - kind: multi
        label: Crossfire
        participants:
          - {speaker: A2, team: A, seconds: 45}
          - {speaker: B2, team: B, seconds: 45}
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	f, ok := c.Get("Short")
	require.True(t, ok)
	assert.Equal(t, engine.SingleStage{Speaker: "A1", Label: "Opening", Duration: 90, Team: engine.TeamA}, f.Stages[0])
	assert.Equal(t, engine.KindMulti, f.Stages[1].Kind())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseRejectsBadStages(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown kind",
			yaml: "formats: [{name: x, stages: [{kind: relay, label: l}]}]",
		},
		{
			name: "unknown team",
			yaml: "formats: [{name: x, stages: [{kind: single, speaker: A1, team: D, seconds: 5}]}]",
		},
		{
			name: "duplicate participant",
			yaml: "formats: [{name: x, stages: [{kind: multi, participants: [{speaker: P, team: A, seconds: 5}, {speaker: P, team: B, seconds: 5}]}]}]",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.ErrorIs(t, err, ErrBadStage)
		})
	}
}
