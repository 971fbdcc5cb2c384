package httpapi

import (
	"net/http"
	"time"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/DoyleJ11/debate-timer-backend/internal/hub"
	"github.com/DoyleJ11/debate-timer-backend/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Formats interface {
	Get(name string) (engine.Format, bool)
	Formats() []engine.Format
}

type Deps struct {
	Hub     *hub.Hub
	Formats Formats
	Logger  *zap.Logger
	// PublicURL is where clients load the app; join links and QR codes
	// point at it.
	PublicURL string
}

func SetupRoutes(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	d.Logger = d.Logger.Named("http")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	// Public routes
	r.Post("/sessions", CreateSession(d))
	r.Get("/sessions/{code}", GetSession(d))
	r.Delete("/sessions/{code}", EndSession(d))
	r.Get("/sessions/{code}/qr.png", SessionQR(d))
	r.Get("/formats", ListFormats(d))
	r.Get("/formats.yaml", ExportFormats(d))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(d.Hub, d.Logger))
	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
