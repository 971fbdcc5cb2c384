package engine

type CommandType string

const (
	CmdChooseFormat      CommandType = "ChooseFormat"
	CmdStartOrResume     CommandType = "StartOrResume"
	CmdPause             CommandType = "Pause"
	CmdToggleParticipant CommandType = "ToggleParticipant"
	CmdEditTime          CommandType = "EditTime"
	CmdNext              CommandType = "Next"
	CmdPrev              CommandType = "Prev"
	CmdSelectStage       CommandType = "SelectStage"
	CmdRequestReset      CommandType = "RequestReset"
	CmdConfirmReset      CommandType = "ConfirmReset"
	CmdCancelReset       CommandType = "CancelReset"
	CmdTick              CommandType = "Tick"
)

/*
	CmdChooseFormat      -> EvtFormatChosen
	CmdStartOrResume     -> EvtCountdownStarted (+ EvtWarningReached when starting at 30)
	                        or EvtResetRequested once the session is finished
	CmdPause             -> EvtCountdownPaused
	CmdToggleParticipant -> [EvtCountdownPaused for the previous participant] -> EvtCountdownStarted
	                        or EvtCountdownPaused when toggling the active one off
	CmdEditTime          -> EvtTimeEdited
	CmdNext/Prev/Select  -> [EvtCountdownPaused] -> EvtStageChanged
	CmdRequestReset      -> EvtResetRequested
	CmdConfirmReset      -> [EvtCountdownPaused] -> EvtResetConfirmed
	CmdCancelReset       -> EvtResetCancelled
	CmdTick              -> EvtTimeTicked -> [EvtWarningReached] -> [EvtCountdownExpired -> [EvtSessionFinished]]
*/

// Command is a user intent or a clock tick. Only the fields relevant to
// Type are read.
type Command struct {
	Type    CommandType
	Format  Format
	Index   int
	Target  Target
	Seconds int
}

type EventType string

const (
	EvtFormatChosen     EventType = "FormatChosen"
	EvtCountdownStarted EventType = "CountdownStarted"
	EvtCountdownPaused  EventType = "CountdownPaused"
	EvtTimeTicked       EventType = "TimeTicked"
	EvtWarningReached   EventType = "WarningReached"
	EvtCountdownExpired EventType = "CountdownExpired"
	EvtSessionFinished  EventType = "SessionFinished"
	EvtStageChanged     EventType = "StageChanged"
	EvtTimeEdited       EventType = "TimeEdited"
	EvtResetRequested   EventType = "ResetRequested"
	EvtResetConfirmed   EventType = "ResetConfirmed"
	EvtResetCancelled   EventType = "ResetCancelled"
)

type Event struct {
	Type        EventType
	StageIndex  int
	Participant string
	Seconds     int
	Format      string
}

// Apply runs cmd against s. On error the returned state is s unchanged.
// A nil event slice with a nil error means the command was a no-op.
func Apply(s Session, cmd Command) ([]Event, Session, error) {
	if cmd.Type == CmdChooseFormat {
		return chooseFormat(s, cmd.Format)
	}
	if !s.HasFormat() {
		return nil, s, ErrNoFormat
	}

	switch cmd.Type {
	case CmdStartOrResume:
		return startOrResume(s)
	case CmdPause:
		return pause(s)
	case CmdToggleParticipant:
		return toggleParticipant(s, cmd.Target.Participant)
	case CmdEditTime:
		return editTime(s, cmd.Target, cmd.Seconds)
	case CmdTick:
		return tick(s)
	case CmdNext:
		return step(s, 1)
	case CmdPrev:
		return step(s, -1)
	case CmdSelectStage:
		return selectStage(s, cmd.Index)
	case CmdRequestReset:
		return requestReset(s)
	case CmdConfirmReset:
		return confirmReset(s)
	case CmdCancelReset:
		return cancelReset(s)
	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// chooseFormat replaces the whole session. The run sequence carries over so
// it never goes backwards within one room.
func chooseFormat(s Session, f Format) ([]Event, Session, error) {
	if f.Name == "" {
		return nil, s, ErrUnknownFormat
	}
	if len(f.Stages) == 0 {
		return nil, s, ErrEmptyFormat
	}

	next := NewSession(f)
	next.RunSeq = s.RunSeq
	return []Event{{Type: EvtFormatChosen, Format: f.Name}}, next, nil
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
