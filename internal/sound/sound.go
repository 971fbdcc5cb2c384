// Package sound defines the warning/end cue contract. The session core only
// triggers cues; producing audio is up to whoever implements Emitter.
package sound

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Emitter must return promptly; it is called from the session loop.
type Emitter interface {
	PlayWarning()
	PlayEnd()
}

type Cue string

const (
	CueWarning Cue = "warning"
	CueEnd     Cue = "end"
)

func Play(e Emitter, cue Cue) {
	switch cue {
	case CueWarning:
		e.PlayWarning()
	case CueEnd:
		e.PlayEnd()
	}
}

type Nop struct{}

func (Nop) PlayWarning() {}
func (Nop) PlayEnd()     {}

type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) Logger {
	return Logger{logger: logger.Named("sound")}
}

func (l Logger) PlayWarning() { l.logger.Info("cue", zap.String("cue", string(CueWarning))) }
func (l Logger) PlayEnd()     { l.logger.Info("cue", zap.String("cue", string(CueEnd))) }

// Async hands cues to a background goroutine. When the queue is full the cue
// is dropped rather than stalling the caller.
type Async struct {
	next   Emitter
	queue  chan Cue
	logger *zap.Logger
}

func NewAsync(next Emitter, buffer int, logger *zap.Logger) *Async {
	if buffer <= 0 {
		buffer = 1
	}
	return &Async{next: next, queue: make(chan Cue, buffer), logger: logger}
}

func (a *Async) PlayWarning() { a.enqueue(CueWarning) }
func (a *Async) PlayEnd()     { a.enqueue(CueEnd) }

func (a *Async) enqueue(cue Cue) {
	select {
	case a.queue <- cue:
	default:
		a.logger.Warn("cue dropped, queue full", zap.String("cue", string(cue)))
	}
}

// Run plays queued cues until ctx is done.
func (a *Async) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case cue := <-a.queue:
			Play(a.next, cue)
		}
	}
}

// Recorder counts cues. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *Recorder) PlayWarning() { r.record(CueWarning) }
func (r *Recorder) PlayEnd()     { r.record(CueEnd) }

func (r *Recorder) record(cue Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, cue)
	r.mu.Unlock()
}

func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

func (r *Recorder) Count(cue Cue) int {
	n := 0
	for _, c := range r.Cues() {
		if c == cue {
			n++
		}
	}
	return n
}
