package engine

import (
	"maps"
	"slices"
)

// TimeState is the remaining time of one stage: SingleTime for a
// SingleStage, MultiTime for a MultiStage.
type TimeState interface {
	Kind() StageKind
	isTimeState()
}

type SingleTime struct {
	Seconds int
}

func (SingleTime) Kind() StageKind { return KindSingle }
func (SingleTime) isTimeState()    {}

// MultiTime maps a participant's speaker label to its remaining seconds.
type MultiTime map[string]int

func (MultiTime) Kind() StageKind { return KindMulti }
func (MultiTime) isTimeState()    {}

// Target addresses one countdown inside a stage. The zero value is the
// countdown of a SingleStage.
type Target struct {
	Participant string
}

func SingleTarget() Target { return Target{} }

func ParticipantTarget(speaker string) Target { return Target{Participant: speaker} }

func (t Target) Kind() StageKind {
	if t.Participant == "" {
		return KindSingle
	}
	return KindMulti
}

// Initialize builds the time states of a freshly chosen format.
func Initialize(f Format) []TimeState {
	states := make([]TimeState, len(f.Stages))
	for i, stage := range f.Stages {
		states[i] = initialTime(stage)
	}
	return states
}

func initialTime(stage Stage) TimeState {
	switch st := stage.(type) {
	case SingleStage:
		return SingleTime{Seconds: max(0, st.Duration)}
	case MultiStage:
		m := make(MultiTime, len(st.Participants))
		for _, p := range st.Participants {
			m[p.Speaker] = max(0, p.Duration)
		}
		return m
	default:
		return nil
	}
}

// Tick takes one second off the selected countdown. A countdown already at
// zero stays at zero.
func Tick(states []TimeState, index int, target Target) ([]TimeState, error) {
	return update(states, index, target, func(v int) int {
		if v <= 0 {
			return 0
		}
		return v - 1
	})
}

// SetManual overwrites the selected countdown, clamping negatives to zero.
func SetManual(states []TimeState, index int, target Target, seconds int) ([]TimeState, error) {
	return update(states, index, target, func(int) int {
		return max(0, seconds)
	})
}

// ResetStage restores the stage's configured durations. Other stages are
// left as they are.
func ResetStage(states []TimeState, index int, stage Stage) ([]TimeState, error) {
	if index < 0 || index >= len(states) {
		return states, ErrInvalidIndex
	}
	if stage == nil || states[index] == nil || stage.Kind() != states[index].Kind() {
		return states, ErrInvalidTarget
	}
	next := slices.Clone(states)
	next[index] = initialTime(stage)
	return next, nil
}

// Remaining reads the selected countdown.
func Remaining(states []TimeState, index int, target Target) (int, error) {
	if index < 0 || index >= len(states) {
		return 0, ErrInvalidIndex
	}
	switch ts := states[index].(type) {
	case SingleTime:
		if target.Kind() != KindSingle {
			return 0, ErrInvalidTarget
		}
		return ts.Seconds, nil
	case MultiTime:
		if target.Kind() != KindMulti {
			return 0, ErrInvalidTarget
		}
		v, ok := ts[target.Participant]
		if !ok {
			return 0, ErrInvalidTarget
		}
		return v, nil
	default:
		return 0, ErrInvalidTarget
	}
}

// update is copy-on-write: the input slice and maps are never modified.
func update(states []TimeState, index int, target Target, fn func(int) int) ([]TimeState, error) {
	current, err := Remaining(states, index, target)
	if err != nil {
		return states, err
	}

	next := slices.Clone(states)
	switch ts := states[index].(type) {
	case SingleTime:
		next[index] = SingleTime{Seconds: fn(current)}
	case MultiTime:
		m := maps.Clone(ts)
		m[target.Participant] = fn(current)
		next[index] = m
	}
	return next, nil
}
