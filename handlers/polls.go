// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/poll-server/cliparse"
	"github.com/danielhkuo/poll-server/middleware"
	"github.com/danielhkuo/poll-server/models"
	"github.com/danielhkuo/poll-server/state"
)

type PollHandler struct {
	st  *state.State
	cfg cliparse.Config
}

func NewPollHandler(st *state.State, cfg cliparse.Config) *PollHandler {
	return &PollHandler{st: st, cfg: cfg}
}

// pollIDFromPath parses the {id} path segment.
func pollIDFromPath(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	metadata, err := h.st.CreatePoll(req.Candidates, req.MinScore, req.MaxScore)
	if err != nil {
		if errors.Is(err, models.ErrNoCandidates) || errors.Is(err, models.ErrInvertedScoreRange) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", metadata.ID, "candidates", len(metadata.Candidates))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: metadata.ID,
	})
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.st.ListPolls())
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id must be an integer")
		return
	}

	metadata, err := h.st.GetPoll(pollID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("poll with id %d not found", pollID))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, metadata)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id must be an integer")
		return
	}

	if err := h.st.DeletePoll(pollID); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("poll with id %d not found", pollID))
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	w.WriteHeader(http.StatusNoContent)
}
