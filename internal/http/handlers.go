package http

import (
	"context"
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/tracker"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
	"github.com/preston-bernstein/nhl-game-tracker/internal/scheduler"
)

// StatusFunc reports the watch loop health.
type StatusFunc func() scheduler.Status

// StateFunc loads the persisted tracker state.
type StateFunc func(ctx context.Context) (tracker.State, error)

// Handler serves the watch-mode health and state endpoints.
type Handler struct {
	status StatusFunc
	state  StateFunc
	logger *slog.Logger
}

// NewHandler constructs a Handler. Either function may be nil.
func NewHandler(status StatusFunc, state StateFunc, logger *slog.Logger) *Handler {
	return &Handler{status: status, state: state, logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether recent runs have succeeded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.status == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	st := h.status()
	if st.IsReady() {
		writeJSON(w, nethttp.StatusOK, readyResponse{Status: "ready", Runs: st.Runs, LastAction: st.LastAction, LastMode: st.LastMode}, h.logger)
		return
	}
	msg := st.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

type readyResponse struct {
	Status     string `json:"status"`
	Runs       int    `json:"runs"`
	LastAction string `json:"lastAction,omitempty"`
	LastMode   string `json:"lastMode,omitempty"`
}

// State returns the persisted tracker state, or 404 until the first run has been saved.
func (h *Handler) State(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.state == nil {
		writeError(w, r, nethttp.StatusNotFound, "state not available", h.logger)
		return
	}
	state, err := h.state(r.Context())
	if err != nil {
		loggerFromContext(r, h.logger).Warn("failed to load state", logging.FieldError, err)
		writeError(w, r, nethttp.StatusInternalServerError, "failed to load state", h.logger)
		return
	}
	if !state.HasRun() {
		writeError(w, r, nethttp.StatusNotFound, "tracker has not run yet", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, state, h.logger)
}
