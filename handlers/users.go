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

type UserHandler struct {
	st  *state.State
	cfg cliparse.Config
}

func NewUserHandler(st *state.State, cfg cliparse.Config) *UserHandler {
	return &UserHandler{st: st, cfg: cfg}
}

// CreateUser handles POST /users
// Routed behind RequireRole(admin).
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if !auth.ValidRole(req.Role) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be admin or general")
		return
	}

	if err := h.st.CreateUser(req.Username, req.Role, req.Password); err != nil {
		if errors.Is(err, state.ErrUserExists) {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user created", "username", req.Username, "role", req.Role)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateUserResponse{
		Username: req.Username,
		Role:     req.Role,
	})
}
