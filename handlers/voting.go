// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/poll-server/cliparse"
	"github.com/danielhkuo/poll-server/middleware"
	"github.com/danielhkuo/poll-server/models"
	"github.com/danielhkuo/poll-server/state"
)

type VotingHandler struct {
	st  *state.State
	cfg cliparse.Config
}

func NewVotingHandler(st *state.State, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{st: st, cfg: cfg}
}

// AddVote handles POST /polls/{id}/votes
// Routed behind RequireAuth; only signed-in users may vote.
func (h *VotingHandler) AddVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id must be an integer")
		return
	}

	var vote models.Vote
	if err := middleware.ParseJSONBody(r, &vote); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	metadata, err := h.st.GetPoll(pollID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("poll not found: %d", pollID))
		return
	}

	if err := h.st.AddVote(pollID, vote); err != nil {
		switch {
		case errors.Is(err, state.ErrPollNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("poll not found: %d", pollID))
		case errors.Is(err, models.ErrInvalidVoteLength):
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("vote was incorrect length (should be %d)", len(metadata.Candidates)))
		case errors.Is(err, models.ErrOutsideScoreRange):
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("vote contained score outside accepted range: [%d, %d]",
					metadata.MinScore, metadata.MaxScore))
		default:
			slog.Error("failed to add vote", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add vote")
		}
		return
	}

	identity, _ := middleware.IdentityFrom(r.Context())
	slog.Info("vote recorded", "poll_id", pollID, "username", identity.Username)

	w.WriteHeader(http.StatusCreated)
}

// ListVotes handles GET /polls/{id}/votes
func (h *VotingHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id must be an integer")
		return
	}

	votes, err := h.st.ListVotes(pollID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("poll not found: %d", pollID))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}
