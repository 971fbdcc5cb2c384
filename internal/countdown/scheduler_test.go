package countdown

import (
	"testing"
	"time"

	"github.com/DoyleJ11/debate-timer-backend/internal/clock"
	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(t *testing.T) engine.Session {
	t.Helper()
	f := engine.Format{
		Name: "test",
		Stages: []engine.Stage{
			engine.SingleStage{Speaker: "A1", Label: "Opening", Duration: 60, Team: engine.TeamA},
			engine.MultiStage{Label: "Attack", Participants: []engine.Participant{
				{Speaker: "P", Team: engine.TeamA, Duration: 60},
				{Speaker: "Q", Team: engine.TeamB, Duration: 60},
			}},
		},
	}
	_, s, err := engine.Apply(engine.Session{}, engine.Command{Type: engine.CmdChooseFormat, Format: f})
	require.NoError(t, err)
	return s
}

func apply(t *testing.T, s engine.Session, cmd engine.Command) engine.Session {
	t.Helper()
	_, next, err := engine.Apply(s, cmd)
	require.NoError(t, err)
	return next
}

func TestSyncStartsAndStopsOneClock(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	sched := NewScheduler(m, time.Second, nil)
	s := session(t)

	sched.Sync(s)
	assert.Nil(t, sched.C())
	assert.Zero(t, m.Created())

	s = apply(t, s, engine.Command{Type: engine.CmdStartOrResume})
	sched.Sync(s)
	require.NotNil(t, sched.C())
	assert.Equal(t, 1, m.Live())

	// Ticks of the same run keep the clock.
	s = apply(t, s, engine.Command{Type: engine.CmdTick})
	sched.Sync(s)
	assert.Equal(t, 1, m.Created())

	s = apply(t, s, engine.Command{Type: engine.CmdPause})
	sched.Sync(s)
	assert.Nil(t, sched.C())
	assert.Zero(t, m.Live())
}

func TestSyncRestartsOnNewRun(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))
	sched := NewScheduler(m, time.Second, nil)
	s := session(t)
	s = apply(t, s, engine.Command{Type: engine.CmdSelectStage, Index: 1})

	s = apply(t, s, engine.Command{Type: engine.CmdToggleParticipant, Target: engine.ParticipantTarget("P")})
	sched.Sync(s)
	target, ok := sched.Live()
	require.True(t, ok)
	assert.Equal(t, "P", target.Participant)

	s = apply(t, s, engine.Command{Type: engine.CmdToggleParticipant, Target: engine.ParticipantTarget("Q")})
	sched.Sync(s)
	target, _ = sched.Live()
	assert.Equal(t, "Q", target.Participant)
	assert.Equal(t, 1, m.Live(), "only one clock may be live")
	assert.Equal(t, 2, m.Created())

	// Same target, new run: a fresh ticker.
	s.RunSeq++
	sched.Sync(s)
	assert.Equal(t, 1, m.Live())
	assert.Equal(t, 3, m.Created())
}

func TestStopIsIdempotent(t *testing.T) {
	sched := NewScheduler(clock.NewManual(time.Unix(0, 0)), 0, nil)
	sched.Stop()
	_, ok := sched.Live()
	assert.False(t, ok)
}
