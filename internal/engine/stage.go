package engine

type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
	TeamC Team = "C"
)

func ParseTeam(team string) (Team, bool) {
	switch Team(team) {
	case TeamA, TeamB, TeamC:
		return Team(team), true
	default:
		return "", false
	}
}

type StageKind string

const (
	KindSingle StageKind = "single"
	KindMulti  StageKind = "multi"
)

// Stage is either a SingleStage or a MultiStage.
type Stage interface {
	Kind() StageKind
	Title() string
	isStage()
}

// SingleStage is one speaker's turn with one countdown.
type SingleStage struct {
	Speaker  string
	Label    string
	Duration int // seconds
	Team     Team
}

func (SingleStage) Kind() StageKind { return KindSingle }
func (s SingleStage) Title() string { return s.Label }
func (SingleStage) isStage()        {}

type Participant struct {
	Speaker  string
	Team     Team
	Duration int // seconds
}

// MultiStage holds independent countdowns, one per participant. Speaker
// labels are unique within the stage and key its MultiTime.
type MultiStage struct {
	Label        string
	Participants []Participant
}

func (MultiStage) Kind() StageKind { return KindMulti }
func (m MultiStage) Title() string { return m.Label }
func (MultiStage) isStage()        {}

func (m MultiStage) Participant(speaker string) (Participant, bool) {
	for _, p := range m.Participants {
		if p.Speaker == speaker {
			return p, true
		}
	}
	return Participant{}, false
}

type Format struct {
	Name   string
	Stages []Stage
}
