package types

import "fmt"

// LowTime is the remaining time at or under which a countdown shows as low.
const LowTime = 30

// Snapshot is the full state of one debate session as sent to clients.
type Snapshot struct {
	Version             int     `json:"version"`
	Code                string  `json:"code"`
	Format              string  `json:"format,omitempty"`
	StageIndex          int     `json:"stage_index"`
	StageCount          int     `json:"stage_count"`
	Stages              []Stage `json:"stages"`
	Running             bool    `json:"running"`
	ActiveParticipant   string  `json:"active_participant,omitempty"`
	Finished            bool    `json:"finished"`
	ResetConfirmPending bool    `json:"reset_confirm_pending"`
}

// Stage is one stage definition with its remaining time. Single stages fill
// Speaker, Team and Countdown; multi stages fill Participants instead, so
// their JSON carries no stage-level clock.
type Stage struct {
	Kind    string `json:"kind"` // "single" | "multi"
	Title   string `json:"title"`
	Speaker string `json:"speaker,omitempty"`
	Team    string `json:"team,omitempty"`
	*Countdown
	Participants []Participant `json:"participants,omitempty"`
	AllFinished  bool          `json:"all_finished,omitempty"`
}

type Participant struct {
	Speaker string `json:"speaker"`
	Team    string `json:"team"`
	Countdown
	Active bool `json:"active"`
}

// Countdown is one running clock.
type Countdown struct {
	Duration  int    `json:"duration"`
	Remaining int    `json:"remaining"`
	Display   string `json:"display"`
	Low       bool   `json:"low"`
	Expired   bool   `json:"expired"`
}

// NewCountdown renders left seconds out of duration.
func NewCountdown(duration, left int) Countdown {
	return Countdown{
		Duration:  duration,
		Remaining: left,
		Display:   Clock(left),
		Low:       IsLow(left),
		Expired:   left == 0,
	}
}

type FormatSummary struct {
	Name   string `json:"name"`
	Stages int    `json:"stages"`
}

// Clock renders seconds as MM:SS. Minutes are not wrapped at an hour.
func Clock(seconds int) string {
	seconds = max(0, seconds)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func IsLow(seconds int) bool {
	return seconds <= LowTime && seconds > 0
}
