package hub

import (
	"context"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/DoyleJ11/debate-timer-backend/internal/room"
	"go.uber.org/zap"
)

type HubMsg interface{ isHubMsg() }

// CreateRoom replies nil when the code is taken.
type CreateRoom struct {
	Code    string
	Session engine.Session
	Reply   chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

// RemoveRoom shuts the room down and replies with it, or nil if the code
// is unknown.
type RemoveRoom struct {
	Code  string
	Reply chan *room.Room
}

// roomClosed is sent once a room's loop has exited on its own.
type roomClosed struct {
	Code string
	Room *room.Room
}

type ShutdownHub struct{}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	base   room.Config
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (RemoveRoom) isHubMsg()  {}
func (roomClosed) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

// NewHub starts the registry. base is copied into every room it creates,
// with Code filled in per room.
func NewHub(parent context.Context, base room.Config) *Hub {
	if base.Logger == nil {
		base.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		base:   base,
		log:    base.Logger.Named("hub"),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				if h.rooms[msg.Code] != nil {
					msg.Reply <- nil
					break
				}
				msg.Reply <- h.open(msg.Code, msg.Session)

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // May be nil

			case RemoveRoom:
				r := h.rooms[msg.Code]
				if r != nil {
					r.Send(h.ctx, room.Shutdown{})
					delete(h.rooms, msg.Code)
					h.log.Info("room removed", zap.String("code", msg.Code))
				}
				msg.Reply <- r

			case roomClosed:
				if h.rooms[msg.Code] == msg.Room {
					delete(h.rooms, msg.Code)
					h.log.Info("room closed", zap.String("code", msg.Code))
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) open(code string, session engine.Session) *room.Room {
	cfg := h.base
	cfg.Code = code
	r := room.New(h.ctx, cfg, session)
	h.rooms[code] = r
	h.log.Info("room created", zap.String("code", code), zap.String("format", session.Format.Name))

	go func() {
		<-r.Done()
		select {
		case h.inbox <- roomClosed{Code: code, Room: r}:
		case <-h.done:
		}
	}()
	return r
}

func (h *Hub) shutdown() {
	for _, r := range h.rooms {
		r.Send(context.Background(), room.Shutdown{})
	}
	clear(h.rooms)
	h.cancel()
}

func (h *Hub) ask(ctx context.Context, m HubMsg, reply chan *room.Room) *room.Room {
	select {
	case h.inbox <- m:
	case <-h.done:
		return nil
	case <-ctx.Done():
		return nil
	}
	select {
	case r := <-reply:
		return r
	case <-h.done:
		return nil
	case <-ctx.Done():
		return nil
	}
}

// Create opens a room under code, or returns nil if the code is taken.
func (h *Hub) Create(ctx context.Context, code string, session engine.Session) *room.Room {
	reply := make(chan *room.Room, 1)
	return h.ask(ctx, CreateRoom{Code: code, Session: session, Reply: reply}, reply)
}

func (h *Hub) Get(ctx context.Context, code string) *room.Room {
	reply := make(chan *room.Room, 1)
	return h.ask(ctx, GetRoom{Code: code, Reply: reply}, reply)
}

// Remove shuts down the room under code and reports whether there was one.
func (h *Hub) Remove(ctx context.Context, code string) bool {
	reply := make(chan *room.Room, 1)
	return h.ask(ctx, RemoveRoom{Code: code, Reply: reply}, reply) != nil
}

// Shutdown stops every room and waits for the hub loop to exit.
func (h *Hub) Shutdown(ctx context.Context) error {
	select {
	case h.inbox <- ShutdownHub{}:
	case <-h.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
