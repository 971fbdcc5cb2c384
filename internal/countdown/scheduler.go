// Package countdown drives the one-second clock of a debate session.
package countdown

import (
	"time"

	"github.com/DoyleJ11/debate-timer-backend/internal/clock"
	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"go.uber.org/zap"
)

// Scheduler owns at most one live ticker for a session. It is not safe for
// concurrent use; the room loop that owns the session owns its scheduler.
type Scheduler struct {
	clock    clock.Clock
	interval time.Duration
	logger   *zap.Logger

	ticker clock.Ticker
	target engine.Target
	run    uint64
}

func NewScheduler(c clock.Clock, interval time.Duration, logger *zap.Logger) *Scheduler {
	if c == nil {
		c = clock.Real{}
	}
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{clock: c, interval: interval, logger: logger}
}

// C is the live ticker's channel, or nil when nothing runs. Receiving from
// a nil channel blocks forever, so a select on C never sees a tick from a
// stopped clock.
func (s *Scheduler) C() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C()
}

// Sync makes the live clock match the session. A different target or a new
// run of the same target stops the old ticker before starting a new one.
func (s *Scheduler) Sync(session engine.Session) {
	target, ok := session.RunningTarget()
	if !ok {
		s.Stop()
		return
	}
	if s.ticker != nil && s.target == target && s.run == session.RunSeq {
		return
	}

	s.Stop()
	s.ticker = s.clock.NewTicker(s.interval)
	s.target = target
	s.run = session.RunSeq
	s.logger.Debug("clock started",
		zap.Int("stage", session.StageIndex),
		zap.String("participant", target.Participant),
		zap.Uint64("run", s.run),
	)
}

func (s *Scheduler) Stop() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.ticker = nil
	s.logger.Debug("clock stopped", zap.Uint64("run", s.run))
}

// Live reports the target the clock is ticking for.
func (s *Scheduler) Live() (engine.Target, bool) {
	if s.ticker == nil {
		return engine.Target{}, false
	}
	return s.target, true
}
