package types

// Client -> Server
// ChooseFormat:
//   format: string
//
// StartOrResume, Pause, Next, Prev: {}
//
// ToggleParticipant:
//   participant: string
//
// EditTime:
//   participant: string // omitted for a single stage
//   seconds: number
//
// SelectStage:
//   index: number
//
// RequestReset, ConfirmReset, CancelReset: {}
const (
	MsgChooseFormat      = "ChooseFormat"
	MsgStartOrResume     = "StartOrResume"
	MsgPause             = "Pause"
	MsgToggleParticipant = "ToggleParticipant"
	MsgEditTime          = "EditTime"
	MsgNext              = "Next"
	MsgPrev              = "Prev"
	MsgSelectStage       = "SelectStage"
	MsgRequestReset      = "RequestReset"
	MsgConfirmReset      = "ConfirmReset"
	MsgCancelReset       = "CancelReset"
)

// Server -> Client
// StateSnapshot:
//   version: number
//   state: Snapshot
//
// Cue:
//   version: number
//   cue: "warning" | "end"
//
// Error:
//   error: string
const (
	MsgStateSnapshot = "StateSnapshot"
	MsgCue           = "Cue"
	MsgError         = "Error"
)
