// Package clock abstracts repeating timers so the countdown scheduler can be
// driven by a real ticker in production and by hand in tests.
package clock

import (
	"sync"
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Real is backed by time.Ticker.
type Real struct{}

func (Real) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// Manual only ticks when told to. Its ticker channels are unbuffered, so
// when Tick returns true the receiver has taken the tick.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
	created int
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) NewTicker(d time.Duration) Ticker {
	t := &manualTicker{
		owner:    m,
		interval: d,
		c:        make(chan time.Time),
		done:     make(chan struct{}),
	}
	m.mu.Lock()
	m.tickers = append(m.tickers, t)
	m.created++
	m.mu.Unlock()
	return t
}

// Tick delivers one tick to the newest live ticker. It returns false when
// no ticker is live or the ticker is stopped before the tick is taken.
func (m *Manual) Tick() bool {
	m.mu.Lock()
	if len(m.tickers) == 0 {
		m.mu.Unlock()
		return false
	}
	t := m.tickers[len(m.tickers)-1]
	m.now = m.now.Add(t.interval)
	now := m.now
	m.mu.Unlock()

	select {
	case t.c <- now:
		return true
	case <-t.done:
		return false
	}
}

// Advance calls Tick n times and reports how many ticks were delivered.
func (m *Manual) Advance(n int) int {
	delivered := 0
	for i := 0; i < n; i++ {
		if m.Tick() {
			delivered++
		}
	}
	return delivered
}

// Live is the number of tickers created and not yet stopped.
func (m *Manual) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

// Created is the number of tickers ever created.
func (m *Manual) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

func (m *Manual) remove(t *manualTicker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, live := range m.tickers {
		if live == t {
			m.tickers = append(m.tickers[:i], m.tickers[i+1:]...)
			return
		}
	}
}

type manualTicker struct {
	owner    *Manual
	interval time.Duration
	c        chan time.Time
	done     chan struct{}
	once     sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.c }

func (t *manualTicker) Stop() {
	t.once.Do(func() {
		close(t.done)
		t.owner.remove(t)
	})
}
