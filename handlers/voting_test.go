// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/poll-server/middleware"
	"github.com/danielhkuo/poll-server/models"
	"github.com/danielhkuo/poll-server/state"
	"github.com/danielhkuo/poll-server/testutil"
)

func voteRequest(pollID string, body interface{}, cookies ...*http.Cookie) *http.Request {
	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/votes", body, cookies...)
	req.SetPathValue("id", pollID)
	return req
}

func TestAddVote(t *testing.T) {
	st, info := testutil.NewTestState(t)
	handler := NewVotingHandler(st, testutil.GetTestConfig())
	cookie := testutil.LoginAs(t, st, info.AdminUsername, info.AdminPassword)
	pollID := testutil.CreateTestPoll(t, st, []string{"alpha", "beta", "gamma"}, 0, 5)
	idStr := strconv.Itoa(pollID)

	guarded := middleware.RequireAuth(st, handler.AddVote)

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded(w, voteRequest(idStr, models.Vote{0, 5, 1}))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)

		votes, err := st.ListVotes(pollID)
		if err != nil {
			t.Fatalf("ListVotes() error = %v", err)
		}
		if len(votes) != 0 {
			t.Errorf("unauthenticated vote was recorded")
		}
	})

	t.Run("valid vote", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded(w, voteRequest(idStr, models.Vote{0, 5, 1}, cookie))
		testutil.AssertStatus(t, w, http.StatusCreated)

		votes, err := st.ListVotes(pollID)
		if err != nil {
			t.Fatalf("ListVotes() error = %v", err)
		}
		if len(votes) != 1 {
			t.Fatalf("got %d votes, want 1", len(votes))
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded(w, voteRequest(idStr, models.Vote{0, 5}, cookie))
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "vote was incorrect length (should be 3)" {
			t.Errorf("Message = %q", resp.Message)
		}
	})

	t.Run("score out of range", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded(w, voteRequest(idStr, models.Vote{0, 6, 1}, cookie))
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "vote contained score outside accepted range: [0, 5]" {
			t.Errorf("Message = %q", resp.Message)
		}
	})

	t.Run("poll not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded(w, voteRequest("999", models.Vote{0, 5, 1}, cookie))
		testutil.AssertStatus(t, w, http.StatusNotFound)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "poll not found: 999" {
			t.Errorf("Message = %q", resp.Message)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded(w, voteRequest(idStr, map[string]string{"scores": "nope"}, cookie))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestListVotes(t *testing.T) {
	st, _ := testutil.NewTestState(t)
	handler := NewVotingHandler(st, testutil.GetTestConfig())
	pollID := testutil.CreateTestPoll(t, st, []string{"a", "b"}, 0, 5)
	idStr := strconv.Itoa(pollID)

	listReq := func(id string) *http.Request {
		req := testutil.MakeRequest("GET", "/polls/"+id+"/votes", nil)
		req.SetPathValue("id", id)
		return req
	}

	t.Run("empty", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListVotes(w, listReq(idStr))
		testutil.AssertStatus(t, w, http.StatusOK)

		var votes []models.Vote
		testutil.AssertJSON(t, w, &votes)
		if len(votes) != 0 {
			t.Errorf("got %d votes, want 0", len(votes))
		}
	})

	if err := st.AddVote(pollID, models.Vote{1, 4}); err != nil {
		t.Fatalf("AddVote() error = %v", err)
	}
	if err := st.AddVote(pollID, models.Vote{5, 0}); err != nil {
		t.Fatalf("AddVote() error = %v", err)
	}

	t.Run("returns all votes", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListVotes(w, listReq(idStr))
		testutil.AssertStatus(t, w, http.StatusOK)

		var votes []models.Vote
		testutil.AssertJSON(t, w, &votes)
		if len(votes) != 2 {
			t.Fatalf("got %d votes, want 2", len(votes))
		}
	})

	t.Run("poll not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListVotes(w, listReq("42"))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestAddVote_PollDeletedBetweenChecks(t *testing.T) {
	st, info := testutil.NewTestState(t)
	handler := NewVotingHandler(st, testutil.GetTestConfig())
	cookie := testutil.LoginAs(t, st, info.AdminUsername, info.AdminPassword)
	pollID := testutil.CreateTestPoll(t, st, []string{"a", "b"}, 0, 5)

	if err := st.DeletePoll(pollID); err != nil {
		t.Fatalf("DeletePoll() error = %v", err)
	}

	w := httptest.NewRecorder()
	middleware.RequireAuth(st, handler.AddVote)(w, voteRequest(strconv.Itoa(pollID), models.Vote{0, 5}, cookie))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	if _, err := st.ListVotes(pollID); !errors.Is(err, state.ErrPollNotFound) {
		t.Errorf("ListVotes() error = %v, want ErrPollNotFound", err)
	}
}
