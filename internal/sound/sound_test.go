package sound

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPlayIgnoresUnknownCue(t *testing.T) {
	var rec Recorder

	Play(&rec, CueWarning)
	Play(&rec, CueEnd)
	Play(&rec, Cue("bogus"))

	assert.Equal(t, []Cue{CueWarning, CueEnd}, rec.Cues())
	assert.Equal(t, 1, rec.Count(CueEnd))
}

func TestLoggerWritesCue(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewLogger(zap.New(core))

	l.PlayWarning()
	l.PlayEnd()

	entries := logs.FilterMessage("cue").All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "warning", entries[0].ContextMap()["cue"])
		assert.Equal(t, "end", entries[1].ContextMap()["cue"])
	}
}

func TestAsyncDeliversAndDropsWhenFull(t *testing.T) {
	var rec Recorder
	a := NewAsync(&rec, 1, zap.NewNop())

	a.PlayWarning()
	a.PlayEnd() // queue full, dropped

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = a.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(rec.Cues()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, []Cue{CueWarning}, rec.Cues())
}
