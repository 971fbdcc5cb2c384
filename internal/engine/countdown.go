package engine

// startOrResume starts the Single countdown of the current stage. Once the
// session is finished the same intent asks for a reset instead.
func startOrResume(s Session) ([]Event, Session, error) {
	if s.Finished {
		return requestReset(s)
	}

	stage, _ := s.CurrentStage()
	if stage.Kind() != KindSingle {
		return nil, s, ErrInvalidTarget
	}
	if s.Running {
		return nil, s, nil
	}

	remaining, err := s.Remaining(SingleTarget())
	if err != nil {
		return nil, s, err
	}
	if remaining == 0 {
		return nil, s, ErrTargetExpired
	}

	next := s
	next.Running = true
	events := next.beginRun(SingleTarget(), remaining)
	return events, next, nil
}

func pause(s Session) ([]Event, Session, error) {
	target, ok := s.RunningTarget()
	if !ok {
		return nil, s, nil
	}
	remaining, _ := s.Remaining(target)

	next := s
	next.stopCountdown()
	return []Event{{Type: EvtCountdownPaused, StageIndex: s.StageIndex, Participant: target.Participant, Seconds: remaining}}, next, nil
}

// toggleParticipant starts speaker's countdown, freezing whichever
// participant was running, or pauses speaker if it is the one running.
func toggleParticipant(s Session, speaker string) ([]Event, Session, error) {
	stage, _ := s.CurrentStage()
	multi, ok := stage.(MultiStage)
	if !ok {
		return nil, s, ErrInvalidTarget
	}
	if _, ok := multi.Participant(speaker); !ok {
		return nil, s, ErrInvalidTarget
	}

	if s.ActiveParticipant == speaker {
		return pause(s)
	}

	target := ParticipantTarget(speaker)
	remaining, err := s.Remaining(target)
	if err != nil {
		return nil, s, err
	}
	if remaining == 0 {
		return nil, s, ErrTargetExpired
	}

	events, next, _ := pause(s)
	next.ActiveParticipant = speaker
	events = append(events, next.beginRun(target, remaining)...)
	return events, next, nil
}

// editTime overwrites a countdown that is not running. A running target is
// refused here rather than left to the presentation layer.
func editTime(s Session, target Target, seconds int) ([]Event, Session, error) {
	if _, err := s.Remaining(target); err != nil {
		return nil, s, err
	}
	if live, ok := s.RunningTarget(); ok && live == target {
		return nil, s, ErrIllegalMutationWhileRunning
	}

	states, err := SetManual(s.TimeStates, s.StageIndex, target, seconds)
	if err != nil {
		return nil, s, err
	}

	next := s
	next.TimeStates = states
	return []Event{{Type: EvtTimeEdited, StageIndex: s.StageIndex, Participant: target.Participant, Seconds: max(0, seconds)}}, next, nil
}

// tick applies one elapsed second to the running target. A tick with no
// running target is stale and ignored.
func tick(s Session) ([]Event, Session, error) {
	target, ok := s.RunningTarget()
	if !ok {
		return nil, s, nil
	}
	remaining, err := s.Remaining(target)
	if err != nil {
		return nil, s, err
	}

	next := s
	if remaining == 0 {
		next.stopCountdown()
		return nil, next, nil
	}

	states, err := Tick(s.TimeStates, s.StageIndex, target)
	if err != nil {
		return nil, s, err
	}
	next.TimeStates = states
	value := remaining - 1

	events := []Event{{Type: EvtTimeTicked, StageIndex: s.StageIndex, Participant: target.Participant, Seconds: value}}
	if value == WarningThreshold && !next.Warned {
		next.Warned = true
		events = append(events, Event{Type: EvtWarningReached, StageIndex: s.StageIndex, Participant: target.Participant, Seconds: value})
	}

	if value == 0 {
		next.stopCountdown()
		events = append(events, Event{Type: EvtCountdownExpired, StageIndex: s.StageIndex, Participant: target.Participant})
		if target.Kind() == KindSingle && next.IsLastStage() {
			next.Finished = true
			events = append(events, Event{Type: EvtSessionFinished, StageIndex: s.StageIndex})
		}
	}
	return events, next, nil
}
