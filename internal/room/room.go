// Package room runs one debate session: a single goroutine owns the session,
// its countdown clock and the connected clients, and applies every command
// and tick in order.
package room

import (
	"context"
	"fmt"
	"time"

	"github.com/DoyleJ11/debate-timer-backend/internal/clock"
	"github.com/DoyleJ11/debate-timer-backend/internal/countdown"
	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/DoyleJ11/debate-timer-backend/internal/journal"
	"github.com/DoyleJ11/debate-timer-backend/internal/sound"
	"go.uber.org/zap"
)

type Msg interface{ isRoomMsg() }

// FromClient carries a command from one client. FormatName is resolved
// through the catalog for CmdChooseFormat.
type FromClient struct {
	ClientID   string
	Cmd        engine.Command
	FormatName string
}

func (FromClient) isRoomMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Update // where this client wants to receive updates
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type UpdateKind string

const (
	UpdateSnapshot UpdateKind = "snapshot"
	UpdateCue      UpdateKind = "cue"
	UpdateError    UpdateKind = "error"
)

// Update is what a client's outbox receives.
type Update struct {
	Kind    UpdateKind
	Version int
	Session engine.Session
	Cue     sound.Cue
	Err     error
}

type View struct {
	Version    int
	NumClients int
	Session    engine.Session
	ClockLive  bool
}

type Formats interface {
	Get(name string) (engine.Format, bool)
}

type Config struct {
	Code         string
	Formats      Formats
	Cues         sound.Emitter
	Journal      journal.Recorder
	Clock        clock.Clock
	TickInterval time.Duration
	// IdleTimeout closes the room once it has had no clients and no running
	// countdown for this long. Zero keeps it open.
	IdleTimeout time.Duration
	Logger      *zap.Logger
}

type Room struct {
	cfg     Config
	inbox   chan Msg
	session engine.Session
	version int
	clients map[string]chan Update
	sched   *countdown.Scheduler
	idle    *time.Timer
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(parent context.Context, cfg Config, initial engine.Session) *Room {
	if cfg.Cues == nil {
		cfg.Cues = sound.Nop{}
	}
	if cfg.Journal == nil {
		cfg.Journal = journal.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	log := cfg.Logger.Named("room").With(zap.String("code", cfg.Code))

	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		cfg:     cfg,
		inbox:   make(chan Msg, 64),
		session: initial,
		clients: make(map[string]chan Update),
		sched:   countdown.NewScheduler(cfg.Clock, cfg.TickInterval, log),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	r.sched.Sync(initial)

	go r.loop()
	return r
}

func (r *Room) loop() {
	defer close(r.done)
	for {
		r.armIdle()
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case <-r.idleC():
			r.log.Info("closing idle room")
			r.shutdown()
			return

		case <-r.sched.C():
			r.apply("", engine.Command{Type: engine.CmdTick}, "")

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.clients[msg.ClientID] = msg.Outbox
				r.sendTo(msg.ClientID, r.snapshot())
				r.log.Debug("client joined", zap.String("client_id", msg.ClientID))

			case Leave:
				if ch, ok := r.clients[msg.ClientID]; ok {
					close(ch)
					delete(r.clients, msg.ClientID)
				}

			case FromClient:
				r.apply(msg.ClientID, msg.Cmd, msg.FormatName)

			case GetState:
				_, live := r.sched.Live()
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					Session:    r.session,
					ClockLive:  live,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

// apply runs one command. The clock is re-synced right after the session
// changes, before anything else can be received, so a stopped clock never
// delivers another tick.
func (r *Room) apply(clientID string, cmd engine.Command, formatName string) {
	if cmd.Type == engine.CmdChooseFormat {
		f, ok := r.cfg.Formats.Get(formatName)
		if !ok {
			r.reject(clientID, cmd, fmt.Errorf("%w: %q", engine.ErrUnknownFormat, formatName))
			return
		}
		cmd.Format = f
	}

	events, next, err := engine.Apply(r.session, cmd)
	if err != nil {
		r.reject(clientID, cmd, err)
		return
	}
	r.session = next
	r.sched.Sync(next)
	if len(events) == 0 {
		return
	}

	r.version++
	if cmd.Type != engine.CmdTick {
		r.log.Debug("command applied",
			zap.String("command", string(cmd.Type)),
			zap.String("client_id", clientID),
			zap.Int("version", r.version),
		)
	}

	r.cfg.Journal.Record(journal.Entry{Code: r.cfg.Code, Version: r.version, Events: events, At: time.Now()})
	r.broadcast(r.snapshot())
	for _, ev := range events {
		switch ev.Type {
		case engine.EvtWarningReached:
			r.cue(sound.CueWarning)
		case engine.EvtCountdownExpired:
			r.cue(sound.CueEnd)
		}
	}
}

func (r *Room) reject(clientID string, cmd engine.Command, err error) {
	r.log.Debug("command rejected",
		zap.String("command", string(cmd.Type)),
		zap.String("client_id", clientID),
		zap.Error(err),
	)
	if clientID != "" {
		r.sendTo(clientID, Update{Kind: UpdateError, Version: r.version, Err: err})
	}
}

func (r *Room) cue(c sound.Cue) {
	sound.Play(r.cfg.Cues, c)
	r.broadcast(Update{Kind: UpdateCue, Version: r.version, Cue: c})
}

func (r *Room) snapshot() Update {
	return Update{Kind: UpdateSnapshot, Version: r.version, Session: r.session}
}

// armIdle starts the idle timer when nobody is connected and nothing is
// counting down, and drops it as soon as either changes.
func (r *Room) armIdle() {
	_, live := r.sched.Live()
	idle := r.cfg.IdleTimeout > 0 && len(r.clients) == 0 && !live
	switch {
	case idle && r.idle == nil:
		r.idle = time.NewTimer(r.cfg.IdleTimeout)
	case !idle && r.idle != nil:
		r.idle.Stop()
		r.idle = nil
	}
}

func (r *Room) idleC() <-chan time.Time {
	if r.idle == nil {
		return nil
	}
	return r.idle.C
}

func (r *Room) shutdown() {
	r.sched.Stop()
	if r.idle != nil {
		r.idle.Stop()
		r.idle = nil
	}
	for id, ch := range r.clients {
		close(ch) // Tell client no more updates
		delete(r.clients, id)
	}
	r.cancel()
}

func (r *Room) broadcast(u Update) {
	for id := range r.clients {
		r.sendTo(id, u)
	}
}

// sendTo never blocks: a client whose outbox is full is dropped.
func (r *Room) sendTo(clientID string, u Update) {
	ch, ok := r.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- u:
	default:
		r.log.Warn("dropping slow client", zap.String("client_id", clientID))
		close(ch)
		delete(r.clients, clientID)
	}
}

// Expose the inbox so tests or the ws layer can send messages.
func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) Code() string { return r.cfg.Code }

// Done is closed once the loop has exited.
func (r *Room) Done() <-chan struct{} { return r.done }

// Send delivers m unless the room has shut down or ctx ends first.
func (r *Room) Send(ctx context.Context, m Msg) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.inbox <- m:
		return true
	case <-r.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// State asks the loop for a consistent view.
func (r *Room) State(ctx context.Context) (View, bool) {
	reply := make(chan View, 1)
	if !r.Send(ctx, GetState{Reply: reply}) {
		return View{}, false
	}
	select {
	case v := <-reply:
		return v, true
	case <-r.done:
		return View{}, false
	case <-ctx.Done():
		return View{}, false
	}
}
