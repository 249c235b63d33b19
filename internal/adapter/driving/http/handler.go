package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sumit221292/zzeep/internal/core/service"
)

type Handler struct {
	Coordinator *service.Coordinator
	Presence    *service.Publisher

	allowedOrigins []string
	upgrader       websocket.Upgrader
}

func NewHandler(coordinator *service.Coordinator, presence *service.Publisher, allowedOrigins []string) *Handler {
	h := &Handler{
		Coordinator:    coordinator,
		Presence:       presence,
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)
	r.Get("/presence/{userID}", h.getPresence)
	r.Get("/ws", h.ServeWS)

	return r
}

// checkOrigin allows every origin when no allowlist is configured, matching
// browser clients served from anywhere during development.
func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// getPresence reports the last-known status for a user from the presence
// store. Users the store has never seen read as offline.
func (h *Handler) getPresence(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	status, err := h.Presence.Status(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to read presence")
		http.Error(w, "presence unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"userId": userID,
		"status": status,
	})
}
