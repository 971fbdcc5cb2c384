package engine

func selectStage(s Session, index int) ([]Event, Session, error) {
	if index < 0 || index >= len(s.Format.Stages) {
		return nil, s, ErrInvalidIndex
	}
	if index == s.StageIndex {
		return nil, s, nil
	}
	events, next := moveTo(s, index)
	return events, next, nil
}

// step moves one stage forward or back. It refuses while any countdown is
// live, Single or participant. At either end the index is clamped, but a
// finished session is still cleared.
func step(s Session, delta int) ([]Event, Session, error) {
	if s.clockLive() {
		return nil, s, ErrCountdownRunning
	}

	index := min(max(s.StageIndex+delta, 0), len(s.Format.Stages)-1)
	if index == s.StageIndex && !s.Finished && !s.ResetConfirmPending {
		return nil, s, nil
	}
	events, next := moveTo(s, index)
	return events, next, nil
}

// moveTo never touches TimeStates. A pending reset belonged to the stage it
// was requested on, so it is dropped too.
func moveTo(s Session, index int) ([]Event, Session) {
	events, next, _ := pause(s)
	next.StageIndex = index
	next.Finished = false
	next.ResetConfirmPending = false
	events = append(events, Event{Type: EvtStageChanged, StageIndex: index})
	return events, next
}
