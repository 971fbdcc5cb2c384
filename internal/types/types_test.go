package types

import (
	"encoding/json"
	"testing"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	pkgtypes "github.com/DoyleJ11/debate-timer-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session() engine.Session {
	s := engine.NewSession(engine.Format{
		Name: "Test",
		Stages: []engine.Stage{
			engine.SingleStage{Speaker: "A1", Label: "Opening", Duration: 240, Team: engine.TeamA},
			engine.MultiStage{Label: "Crossfire", Participants: []engine.Participant{
				{Speaker: "P", Team: engine.TeamA, Duration: 120},
				{Speaker: "Q", Team: engine.TeamB, Duration: 60},
			}},
		},
	})
	s.StageIndex = 1
	s.TimeStates[1] = engine.MultiTime{"P": 25, "Q": 0}
	s.ActiveParticipant = "P"
	return s
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot("ABC123", 4, session())

	assert.Equal(t, 4, snap.Version)
	assert.Equal(t, "ABC123", snap.Code)
	assert.Equal(t, 1, snap.StageIndex)
	assert.Equal(t, 2, snap.StageCount)
	require.Len(t, snap.Stages, 2)

	single := snap.Stages[0]
	assert.Equal(t, "single", single.Kind)
	assert.Equal(t, "04:00", single.Display)
	assert.False(t, single.Low)

	multi := snap.Stages[1]
	assert.Equal(t, "Crossfire", multi.Title)
	assert.False(t, multi.AllFinished)
	require.Len(t, multi.Participants, 2)
	assert.Equal(t, pkgtypes.Participant{
		Speaker: "P", Team: "A", Active: true,
		Countdown: pkgtypes.Countdown{Duration: 120, Remaining: 25, Display: "00:25", Low: true},
	}, multi.Participants[0])
	assert.True(t, multi.Participants[1].Expired)
	assert.False(t, multi.Participants[1].Low)
}

func TestSnapshotJSON_ClockOnlyOnSingleStages(t *testing.T) {
	raw, err := json.Marshal(NewSnapshot("ABC123", 4, session()))
	require.NoError(t, err)

	var decoded struct {
		Stages []map[string]any `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Stages, 2)

	single, multi := decoded.Stages[0], decoded.Stages[1]
	assert.Equal(t, 240.0, single["remaining"])
	assert.Equal(t, "04:00", single["display"])
	for _, key := range []string{"duration", "remaining", "display", "low", "expired"} {
		assert.NotContains(t, multi, key)
	}
	participants, ok := multi["participants"].([]any)
	require.True(t, ok)
	assert.Equal(t, 25.0, participants[0].(map[string]any)["remaining"])
}

func TestNewSnapshot_AllFinished(t *testing.T) {
	s := session()
	s.TimeStates[1] = engine.MultiTime{"P": 0, "Q": 0}
	s.ActiveParticipant = ""

	snap := NewSnapshot("ABC123", 0, s)
	assert.True(t, snap.Stages[1].AllFinished)
}

func TestNewSnapshot_NoFormat(t *testing.T) {
	snap := NewSnapshot("ABC123", 0, engine.Session{})
	assert.Empty(t, snap.Stages)
	assert.Equal(t, 0, snap.StageCount)
}

func TestClientMessageOptionalFields(t *testing.T) {
	var m ClientMessage
	require.NoError(t, json.Unmarshal([]byte(`{"type":"EditTime","seconds":0}`), &m))
	require.NotNil(t, m.Seconds)
	assert.Equal(t, 0, *m.Seconds)
	assert.Nil(t, m.Index)
}
