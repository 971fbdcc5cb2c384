package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"gopkg.in/yaml.v3"
)

var ErrBadStage = errors.New("bad stage")

type yamlCatalog struct {
	Formats []yamlFormat `yaml:"formats"`
}

type yamlFormat struct {
	Name   string      `yaml:"name"`
	Stages []yamlStage `yaml:"stages"`
}

type yamlStage struct {
	Kind         string            `yaml:"kind"`
	Label        string            `yaml:"label"`
	Speaker      string            `yaml:"speaker,omitempty"`
	Team         string            `yaml:"team,omitempty"`
	Seconds      int               `yaml:"seconds,omitempty"`
	Participants []yamlParticipant `yaml:"participants,omitempty"`
}

type yamlParticipant struct {
	Speaker string `yaml:"speaker"`
	Team    string `yaml:"team"`
	Seconds int    `yaml:"seconds"`
}

// Load reads a catalog file. The file replaces the built-in formats.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var file yamlCatalog
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	formats := make([]engine.Format, 0, len(file.Formats))
	for _, yf := range file.Formats {
		f, err := yf.toFormat()
		if err != nil {
			return nil, fmt.Errorf("format %q: %w", yf.Name, err)
		}
		formats = append(formats, f)
	}
	return New(formats...)
}

// Marshal writes formats in the file layout Parse reads.
func Marshal(formats []engine.Format) ([]byte, error) {
	var file yamlCatalog
	for _, f := range formats {
		file.Formats = append(file.Formats, fromFormat(f))
	}
	out, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog yaml: %w", err)
	}
	return out, nil
}

func (yf yamlFormat) toFormat() (engine.Format, error) {
	f := engine.Format{Name: yf.Name}
	for i, ys := range yf.Stages {
		stage, err := ys.toStage()
		if err != nil {
			return engine.Format{}, fmt.Errorf("stage %d: %w", i, err)
		}
		f.Stages = append(f.Stages, stage)
	}
	return f, nil
}

func (ys yamlStage) toStage() (engine.Stage, error) {
	switch engine.StageKind(ys.Kind) {
	case engine.KindSingle:
		team, ok := engine.ParseTeam(ys.Team)
		if !ok {
			return nil, fmt.Errorf("%w: unknown team %q", ErrBadStage, ys.Team)
		}
		return engine.SingleStage{Speaker: ys.Speaker, Label: ys.Label, Duration: ys.Seconds, Team: team}, nil

	case engine.KindMulti:
		st := engine.MultiStage{Label: ys.Label}
		seen := make(map[string]bool, len(ys.Participants))
		for _, yp := range ys.Participants {
			team, ok := engine.ParseTeam(yp.Team)
			if !ok {
				return nil, fmt.Errorf("%w: unknown team %q", ErrBadStage, yp.Team)
			}
			if yp.Speaker == "" || seen[yp.Speaker] {
				return nil, fmt.Errorf("%w: participant %q must be unique and non-empty", ErrBadStage, yp.Speaker)
			}
			seen[yp.Speaker] = true
			st.Participants = append(st.Participants, engine.Participant{Speaker: yp.Speaker, Team: team, Duration: yp.Seconds})
		}
		return st, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrBadStage, ys.Kind)
	}
}

func fromFormat(f engine.Format) yamlFormat {
	yf := yamlFormat{Name: f.Name}
	for _, stage := range f.Stages {
		switch st := stage.(type) {
		case engine.SingleStage:
			yf.Stages = append(yf.Stages, yamlStage{
				Kind:    string(engine.KindSingle),
				Label:   st.Label,
				Speaker: st.Speaker,
				Team:    string(st.Team),
				Seconds: st.Duration,
			})
		case engine.MultiStage:
			ys := yamlStage{Kind: string(engine.KindMulti), Label: st.Label}
			for _, p := range st.Participants {
				ys.Participants = append(ys.Participants, yamlParticipant{Speaker: p.Speaker, Team: string(p.Team), Seconds: p.Duration})
			}
			yf.Stages = append(yf.Stages, ys)
		}
	}
	return yf
}
