package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/DoyleJ11/debate-timer-backend/internal/catalog"
	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"github.com/DoyleJ11/debate-timer-backend/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const (
	codeLength   = 6
	maxCodeTries = 16
	qrSize       = 256
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, codeLength)
	for i := 0; i < codeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createSessionRequest struct {
	Format string `json:"format"`
}

type createSessionResponse struct {
	Code    string `json:"code"`
	JoinURL string `json:"join_url,omitempty"`
}

// CreateSession opens a room under a fresh code. The body is optional; a
// format name in it is chosen up front.
func CreateSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		session := engine.Session{}
		if req.Format != "" {
			f, ok := d.Formats.Get(req.Format)
			if !ok {
				http.Error(w, "unknown format", http.StatusBadRequest)
				return
			}
			session = engine.NewSession(f)
		}

		for try := 0; try < maxCodeTries; try++ {
			code, err := GenerateCode()
			if err != nil {
				d.Logger.Error("generate code", zap.Error(err))
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			if d.Hub.Create(r.Context(), code, session) == nil {
				d.Logger.Debug("collision on code, regenerating", zap.String("code", code))
				continue
			}

			writeJSON(w, http.StatusCreated, createSessionResponse{Code: code, JoinURL: d.joinURL(code)})
			return
		}
		http.Error(w, "failed to create session", http.StatusInternalServerError)
	}
}

func GetSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		rm := d.Hub.Get(r.Context(), code)
		if rm == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		v, ok := rm.State(r.Context())
		if !ok {
			http.Error(w, "session closed", http.StatusGone)
			return
		}
		writeJSON(w, http.StatusOK, types.NewSnapshot(code, v.Version, v.Session))
	}
}

// SessionQR renders the join link of a session as a PNG.
func SessionQR(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if d.Hub.Get(r.Context(), code) == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		link := d.joinURL(code)
		if link == "" {
			http.Error(w, "public url not configured", http.StatusNotFound)
			return
		}
		png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
		if err != nil {
			d.Logger.Error("encode qr", zap.String("code", code), zap.Error(err))
			http.Error(w, "failed to render qr", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

// EndSession closes a room and disconnects its clients.
func EndSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Hub.Remove(r.Context(), chi.URLParam(r, "code")) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListFormats(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.FormatSummaries(d.Formats.Formats()))
	}
}

// ExportFormats serves the loaded formats as a catalog file, ready to be
// edited and passed back through CATALOG_PATH.
func ExportFormats(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := catalog.Marshal(d.Formats.Formats())
		if err != nil {
			d.Logger.Error("export formats", zap.Error(err))
			http.Error(w, "failed to export formats", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (d Deps) joinURL(code string) string {
	if d.PublicURL == "" {
		return ""
	}
	return strings.TrimRight(d.PublicURL, "/") + "/?code=" + code
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
