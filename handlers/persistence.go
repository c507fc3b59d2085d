// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/poll-server/db"
	"github.com/danielhkuo/poll-server/middleware"
	"github.com/danielhkuo/poll-server/state"
)

type StateHandler struct {
	st *state.State
	gw db.Gateway
}

func NewStateHandler(st *state.State, gw db.Gateway) *StateHandler {
	return &StateHandler{st: st, gw: gw}
}

// SaveState handles POST /save_state
// Routed behind RequireRole(admin). A failed save is a server error, not
// a silent loss.
func (h *StateHandler) SaveState(w http.ResponseWriter, r *http.Request) {
	if err := h.gw.Save(h.st.Snapshot()); err != nil {
		slog.Error("failed to save state snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "could not write state snapshot")
		return
	}

	slog.Info("state snapshot saved")

	w.WriteHeader(http.StatusNoContent)
}
