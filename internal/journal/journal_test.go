package journal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAppender struct {
	mu   sync.Mutex
	rows []Record
	err  error
}

func (f *fakeAppender) Append(_ context.Context, rows []Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, rows...)
	return f.err
}

func (f *fakeAppender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func TestRowsSkipsTicks(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	rows := Rows(Entry{
		Code:    "ABC123",
		Version: 7,
		At:      at,
		Events: []engine.Event{
			{Type: engine.EvtTimeTicked, Seconds: 30},
			{Type: engine.EvtWarningReached, StageIndex: 2, Participant: "P", Seconds: 30},
		},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, Record{
		SessionCode: "ABC123",
		Version:     7,
		Seq:         1,
		Type:        "WarningReached",
		StageIndex:  2,
		Participant: "P",
		Seconds:     30,
		CreatedAt:   at,
	}, rows[0])
	assert.Equal(t, "session_events", Record{}.TableName())
}

func TestWriterAppendsQueuedEntries(t *testing.T) {
	app := &fakeAppender{}
	w := NewWriter(app, 4, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	w.Record(Entry{Code: "A", Version: 1, Events: []engine.Event{{Type: engine.EvtFormatChosen, Format: "Type A (4 v 4)"}}})
	w.Record(Entry{Code: "A", Version: 2, Events: []engine.Event{{Type: engine.EvtCountdownStarted, Seconds: 240}}})

	assert.Eventually(t, func() bool { return app.count() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestWriterDropsWhenFullAndLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	app := &fakeAppender{err: errors.New("db down")}
	w := NewWriter(app, 1, zap.New(core))

	w.Record(Entry{Code: "A", Version: 1, Events: []engine.Event{{Type: engine.EvtResetRequested}}})
	w.Record(Entry{Code: "A", Version: 2})
	assert.Equal(t, 1, logs.FilterMessage("journal queue full, entry dropped").Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("journal append failed").Len() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.Record(Entry{Code: "A"})
}
