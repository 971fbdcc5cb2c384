package engine

func requestReset(s Session) ([]Event, Session, error) {
	if s.ResetConfirmPending {
		return nil, s, nil
	}
	next := s
	next.ResetConfirmPending = true
	return []Event{{Type: EvtResetRequested, StageIndex: s.StageIndex}}, next, nil
}

// confirmReset restores the current stage only.
func confirmReset(s Session) ([]Event, Session, error) {
	if !s.ResetConfirmPending {
		return nil, s, ErrResetNotRequested
	}
	stage, _ := s.CurrentStage()

	events, next, _ := pause(s)
	states, err := ResetStage(next.TimeStates, next.StageIndex, stage)
	if err != nil {
		return nil, s, err
	}
	next.TimeStates = states
	next.Finished = false
	next.ResetConfirmPending = false

	events = append(events, Event{Type: EvtResetConfirmed, StageIndex: s.StageIndex})
	return events, next, nil
}

func cancelReset(s Session) ([]Event, Session, error) {
	if !s.ResetConfirmPending {
		return nil, s, nil
	}
	next := s
	next.ResetConfirmPending = false
	return []Event{{Type: EvtResetCancelled, StageIndex: s.StageIndex}}, next, nil
}
