package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/DoyleJ11/debate-timer-backend/internal/hub"
	"github.com/DoyleJ11/debate-timer-backend/internal/room"
	"github.com/DoyleJ11/debate-timer-backend/internal/types"
	pkgtypes "github.com/DoyleJ11/debate-timer-backend/pkg/types"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const writeTimeout = 3 * time.Second

func Handler(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	logger = logger.Named("ws")
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		rm := h.Get(r.Context(), code)
		if rm == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			logger.Debug("accept failed", zap.String("code", code), zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		log := logger.With(zap.String("code", code), zap.String("client_id", clientID))

		out := make(chan room.Update, 16)
		if !rm.Send(r.Context(), room.Join{ClientID: clientID, Outbox: out}) {
			conn.Close(websocket.StatusGoingAway, "session closed")
			return
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			rm.Send(ctx, room.Leave{ClientID: clientID})
			cancel()
		}()
		log.Info("client connected")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case u, ok := <-out:
					if !ok {
						// Outbox closed by the room.
						conn.Close(websocket.StatusGoingAway, "session closed")
						return
					}
					if err := write(writeCtx, conn, toServerMessage(code, u)); err != nil {
						log.Debug("write failed", zap.Error(err))
					}
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					log.Info("client disconnected")
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = write(r.Context(), conn, types.ServerMessage{Type: pkgtypes.MsgError, Error: "bad json"})
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				_ = write(r.Context(), conn, types.ServerMessage{Type: pkgtypes.MsgError, Error: "unknown or incomplete message"})
				continue
			}

			if !rm.Send(r.Context(), room.FromClient{ClientID: clientID, Cmd: cmd, FormatName: cm.Format}) {
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

func toServerMessage(code string, u room.Update) types.ServerMessage {
	switch u.Kind {
	case room.UpdateCue:
		return types.ServerMessage{Type: pkgtypes.MsgCue, Version: u.Version, Cue: string(u.Cue)}
	case room.UpdateError:
		return types.ServerMessage{Type: pkgtypes.MsgError, Version: u.Version, Error: u.Err.Error()}
	default:
		snap := types.NewSnapshot(code, u.Version, u.Session)
		return types.ServerMessage{Type: pkgtypes.MsgStateSnapshot, Version: u.Version, State: &snap}
	}
}

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case pkgtypes.MsgChooseFormat:
		if m.Format == "" {
			return engine.Command{}, false
		}
		return engine.Command{Type: engine.CmdChooseFormat}, true
	case pkgtypes.MsgStartOrResume:
		return engine.Command{Type: engine.CmdStartOrResume}, true
	case pkgtypes.MsgPause:
		return engine.Command{Type: engine.CmdPause}, true
	case pkgtypes.MsgToggleParticipant:
		if m.Participant == "" {
			return engine.Command{}, false
		}
		return engine.Command{Type: engine.CmdToggleParticipant, Target: engine.ParticipantTarget(m.Participant)}, true
	case pkgtypes.MsgEditTime:
		if m.Seconds == nil {
			return engine.Command{}, false
		}
		return engine.Command{Type: engine.CmdEditTime, Target: engine.Target{Participant: m.Participant}, Seconds: *m.Seconds}, true
	case pkgtypes.MsgNext:
		return engine.Command{Type: engine.CmdNext}, true
	case pkgtypes.MsgPrev:
		return engine.Command{Type: engine.CmdPrev}, true
	case pkgtypes.MsgSelectStage:
		if m.Index == nil {
			return engine.Command{}, false
		}
		return engine.Command{Type: engine.CmdSelectStage, Index: *m.Index}, true
	case pkgtypes.MsgRequestReset:
		return engine.Command{Type: engine.CmdRequestReset}, true
	case pkgtypes.MsgConfirmReset:
		return engine.Command{Type: engine.CmdConfirmReset}, true
	case pkgtypes.MsgCancelReset:
		return engine.Command{Type: engine.CmdCancelReset}, true
	default:
		return engine.Command{}, false
	}
}
