package types

import (
	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	pkgtypes "github.com/DoyleJ11/debate-timer-backend/pkg/types"
)

type ClientMessage struct {
	Type        string `json:"type"`
	Format      string `json:"format,omitempty"`
	Participant string `json:"participant,omitempty"`
	Seconds     *int   `json:"seconds,omitempty"`
	Index       *int   `json:"index,omitempty"`
}

type ServerMessage struct {
	Type    string             `json:"type"` // "StateSnapshot" | "Cue" | "Error"
	Version int                `json:"version,omitempty"`
	State   *pkgtypes.Snapshot `json:"state,omitempty"`
	Cue     string             `json:"cue,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// NewSnapshot renders a session for clients.
func NewSnapshot(code string, version int, s engine.Session) pkgtypes.Snapshot {
	snap := pkgtypes.Snapshot{
		Version:             version,
		Code:                code,
		Format:              s.Format.Name,
		StageIndex:          s.StageIndex,
		StageCount:          len(s.Format.Stages),
		Stages:              make([]pkgtypes.Stage, 0, len(s.Format.Stages)),
		Running:             s.Running,
		ActiveParticipant:   s.ActiveParticipant,
		Finished:            s.Finished,
		ResetConfirmPending: s.ResetConfirmPending,
	}
	if !s.HasFormat() {
		return snap
	}

	for i, stage := range s.Format.Stages {
		current := i == s.StageIndex
		switch st := stage.(type) {
		case engine.SingleStage:
			var left int
			if t, ok := s.TimeStates[i].(engine.SingleTime); ok {
				left = t.Seconds
			}
			c := pkgtypes.NewCountdown(st.Duration, left)
			snap.Stages = append(snap.Stages, pkgtypes.Stage{
				Kind:      string(engine.KindSingle),
				Title:     st.Title(),
				Speaker:   st.Speaker,
				Team:      string(st.Team),
				Countdown: &c,
			})

		case engine.MultiStage:
			times, _ := s.TimeStates[i].(engine.MultiTime)
			out := pkgtypes.Stage{
				Kind:        string(engine.KindMulti),
				Title:       st.Title(),
				AllFinished: len(st.Participants) > 0,
			}
			for _, p := range st.Participants {
				left := times[p.Speaker]
				out.Participants = append(out.Participants, pkgtypes.Participant{
					Speaker:   p.Speaker,
					Team:      string(p.Team),
					Countdown: pkgtypes.NewCountdown(p.Duration, left),
					Active:    current && s.ActiveParticipant == p.Speaker,
				})
				if left > 0 {
					out.AllFinished = false
				}
			}
			snap.Stages = append(snap.Stages, out)
		}
	}
	return snap
}

func FormatSummaries(formats []engine.Format) []pkgtypes.FormatSummary {
	out := make([]pkgtypes.FormatSummary, 0, len(formats))
	for _, f := range formats {
		out = append(out, pkgtypes.FormatSummary{Name: f.Name, Stages: len(f.Stages)})
	}
	return out
}
