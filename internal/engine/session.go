package engine

// WarningThreshold is the remaining time, in seconds, at which a running
// countdown raises its warning cue.
const WarningThreshold = 30

// Session is the whole mutable state of one debate. It is a value: Apply
// returns a new Session and never modifies the one it was given.
type Session struct {
	Format     Format
	StageIndex int
	TimeStates []TimeState

	// Running is the Single countdown of the current stage.
	Running bool
	// ActiveParticipant is the ticking participant of the current Multi
	// stage, "" when none.
	ActiveParticipant string

	Finished            bool
	ResetConfirmPending bool

	// RunSeq increases every time a countdown starts, so two runs of the
	// same target can be told apart.
	RunSeq uint64
	// Warned latches the warning cue for the current run.
	Warned bool
}

func NewSession(f Format) Session {
	return Session{
		Format:     f,
		TimeStates: Initialize(f),
	}
}

func (s Session) HasFormat() bool {
	return len(s.Format.Stages) > 0 && len(s.TimeStates) == len(s.Format.Stages)
}

func (s Session) CurrentStage() (Stage, bool) {
	if !s.HasFormat() || s.StageIndex < 0 || s.StageIndex >= len(s.Format.Stages) {
		return nil, false
	}
	return s.Format.Stages[s.StageIndex], true
}

func (s Session) IsLastStage() bool {
	return s.HasFormat() && s.StageIndex == len(s.Format.Stages)-1
}

// RunningTarget reports the countdown that should be ticking right now.
// Only the flag matching the current stage's kind is honoured.
func (s Session) RunningTarget() (Target, bool) {
	stage, ok := s.CurrentStage()
	if !ok {
		return Target{}, false
	}
	switch stage.Kind() {
	case KindSingle:
		if s.Running {
			return SingleTarget(), true
		}
	case KindMulti:
		if s.ActiveParticipant != "" {
			return ParticipantTarget(s.ActiveParticipant), true
		}
	}
	return Target{}, false
}

func (s Session) Remaining(target Target) (int, error) {
	return Remaining(s.TimeStates, s.StageIndex, target)
}

func (s Session) clockLive() bool {
	_, ok := s.RunningTarget()
	return ok
}

func (s *Session) stopCountdown() {
	s.Running = false
	s.ActiveParticipant = ""
	s.Warned = false
}

// beginRun arms a new run of target. A run that starts exactly on the
// threshold warns immediately.
func (s *Session) beginRun(target Target, remaining int) []Event {
	s.RunSeq++
	s.Warned = false
	events := []Event{{Type: EvtCountdownStarted, StageIndex: s.StageIndex, Participant: target.Participant, Seconds: remaining}}
	if remaining == WarningThreshold {
		s.Warned = true
		events = append(events, Event{Type: EvtWarningReached, StageIndex: s.StageIndex, Participant: target.Participant, Seconds: remaining})
	}
	return events
}
