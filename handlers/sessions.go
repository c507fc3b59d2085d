// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/poll-server/auth"
	"github.com/danielhkuo/poll-server/cliparse"
	"github.com/danielhkuo/poll-server/middleware"
	"github.com/danielhkuo/poll-server/models"
	"github.com/danielhkuo/poll-server/state"
)

type SessionHandler struct {
	st  *state.State
	cfg cliparse.Config
}

func NewSessionHandler(st *state.State, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{st: st, cfg: cfg}
}

// Login handles POST /login
// On success it sets the signed session cookie.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.st.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, state.ErrBadCredentials) {
			// One message for unknown user and wrong password alike
			middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	cookieValue := auth.SignToken(token, h.st.SigningKey())
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    cookieValue,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	identity, err := h.st.AuthenticateRequest(cookieValue)
	if err != nil {
		slog.Error("failed to resolve fresh session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "username", identity.Username, "role", identity.Role)

	middleware.JSONResponse(w, http.StatusOK, models.IdentityResponse{
		Username: identity.Username,
		Role:     identity.Role,
	})
}

// Me handles GET /me
// Requires authentication; echoes the identity resolved by the guard.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "you are not signed in")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.IdentityResponse{
		Username: identity.Username,
		Role:     identity.Role,
	})
}
