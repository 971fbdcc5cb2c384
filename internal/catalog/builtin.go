package catalog

import "github.com/DoyleJ11/debate-timer-backend/internal/engine"

const (
	opening   = 4 * 60
	rebut     = 2 * 60
	question  = 2 * 60
	attack    = 2 * 60
	group     = 5 * 60
	conclude  = 4 * 60
	stageOpen = "Opening Argument"
)

func single(speaker, label string, seconds int, team engine.Team) engine.Stage {
	return engine.SingleStage{Speaker: speaker, Label: label, Duration: seconds, Team: team}
}

func multi(label string, seconds int, participants ...engine.Participant) engine.Stage {
	for i := range participants {
		participants[i].Duration = seconds
	}
	return engine.MultiStage{Label: label, Participants: participants}
}

func p(speaker string, team engine.Team) engine.Participant {
	return engine.Participant{Speaker: speaker, Team: team}
}

// Builtin returns the formats of the championship rules.
func Builtin() []engine.Format {
	return []engine.Format{
		{
			Name: "Type A (4 v 4)",
			Stages: []engine.Stage{
				single("A1", stageOpen, opening, engine.TeamA),
				single("B1", stageOpen, opening, engine.TeamB),
				single("A2", "Questioning (on B2)", question, engine.TeamA),
				single("B2", "Questioning (on A2)", question, engine.TeamB),
				multi("Attack and Defend", attack, p("A3", engine.TeamA), p("B3", engine.TeamB)),
				multi("Group Attack and Defend", group, p("Team A", engine.TeamA), p("Team B", engine.TeamB)),
				single("A4", "Conclude", conclude, engine.TeamA),
				single("B4", "Conclude", conclude, engine.TeamB),
			},
		},
		{
			Name: "Type B (4 v 4 v 4)",
			Stages: []engine.Stage{
				single("A1", stageOpen, opening, engine.TeamA),
				single("B1", stageOpen, opening, engine.TeamB),
				single("C1", stageOpen, opening, engine.TeamC),
				single("A2", "Questioning (on B2)", question, engine.TeamA),
				single("B2", "Questioning (on C2)", question, engine.TeamB),
				single("C2", "Questioning (on A2)", question, engine.TeamC),
				multi("Attack and Defend", attack, p("A3", engine.TeamA), p("B3", engine.TeamB), p("C3", engine.TeamC)),
				multi("Group Attack and Defend", group, p("Team A", engine.TeamA), p("Team B", engine.TeamB), p("Team C", engine.TeamC)),
				single("A4", "Conclude", conclude, engine.TeamA),
				single("B4", "Conclude", conclude, engine.TeamB),
				single("C4", "Conclude", conclude, engine.TeamC),
			},
		},
		{
			Name: "Type C (5 v 5)",
			Stages: []engine.Stage{
				single("A1", stageOpen, opening, engine.TeamA),
				single("B1", stageOpen, opening, engine.TeamB),
				single("B2", "Rebut", rebut, engine.TeamB),
				single("A2", "Rebut", rebut, engine.TeamA),
				single("A3", "Questioning (on B3)", question, engine.TeamA),
				single("B3", "Questioning (on A3)", question, engine.TeamB),
				multi("Attack and Defend", attack, p("A4", engine.TeamA), p("B4", engine.TeamB)),
				multi("Group Attack and Defend", group, p("Team A", engine.TeamA), p("Team B", engine.TeamB)),
				single("A5", "Conclude", conclude, engine.TeamA),
				single("B5", "Conclude", conclude, engine.TeamB),
			},
		},
		{
			Name: "Type D (5 v 5 v 5)",
			Stages: []engine.Stage{
				single("A1", stageOpen, opening, engine.TeamA),
				single("B1", stageOpen, opening, engine.TeamB),
				single("C1", stageOpen, opening, engine.TeamC),
				single("C2", "Rebut", rebut, engine.TeamC),
				single("B2", "Rebut", rebut, engine.TeamB),
				single("A2", "Rebut", rebut, engine.TeamA),
				single("A3", "Questioning (on B3)", question, engine.TeamA),
				single("B3", "Questioning (on C3)", question, engine.TeamB),
				single("C3", "Questioning (on A3)", question, engine.TeamC),
				multi("Attack and Defend", attack, p("A4", engine.TeamA), p("B4", engine.TeamB), p("C4", engine.TeamC)),
				multi("Group Attack and Defend", group, p("Team A", engine.TeamA), p("Team B", engine.TeamB), p("Team C", engine.TeamC)),
				single("A5", "Conclude", conclude, engine.TeamA),
				single("B5", "Conclude", conclude, engine.TeamB),
				single("C5", "Conclude", conclude, engine.TeamC),
			},
		},
	}
}

// Default is the catalog of built-in formats.
func Default() *Catalog {
	c, err := New(Builtin()...)
	if err != nil {
		panic(err)
	}
	return c
}
