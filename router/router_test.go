// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/poll-server/auth"
	"github.com/danielhkuo/poll-server/db"
	"github.com/danielhkuo/poll-server/models"
	"github.com/danielhkuo/poll-server/state"
	"github.com/danielhkuo/poll-server/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *state.State, state.BootstrapInfo, *db.FileStore) {
	t.Helper()

	st, info := testutil.NewTestState(t)
	gw := db.NewFileStore(filepath.Join(t.TempDir(), "polls.json"))
	mux := NewRouter(st, gw, testutil.GetTestConfig())
	return mux, st, info, gw
}

func TestHealthCheck(t *testing.T) {
	mux, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/health", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "poll-server API v1" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestRouteGuards(t *testing.T) {
	mux, st, info, _ := newTestRouter(t)
	adminCookie := testutil.LoginAs(t, st, info.AdminUsername, info.AdminPassword)
	password := testutil.CreateTestUser(t, st, "erin", auth.RoleGeneral)
	generalCookie := testutil.LoginAs(t, st, "erin", password)
	pollID := testutil.CreateTestPoll(t, st, []string{"a", "b"}, 0, 5)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		cookie     *http.Cookie
		wantStatus int
	}{
		{"me without cookie", "GET", "/me", nil, nil, http.StatusUnauthorized},
		{"me with cookie", "GET", "/me", nil, generalCookie, http.StatusOK},
		{"list polls is public", "GET", "/polls", nil, nil, http.StatusOK},
		{"get poll is public", "GET", fmt.Sprintf("/polls/%d", pollID), nil, nil, http.StatusOK},
		{"list votes is public", "GET", fmt.Sprintf("/polls/%d/votes", pollID), nil, nil, http.StatusOK},
		{"vote without cookie", "POST", fmt.Sprintf("/polls/%d/votes", pollID), models.Vote{1, 2}, nil, http.StatusUnauthorized},
		{"vote with cookie", "POST", fmt.Sprintf("/polls/%d/votes", pollID), models.Vote{1, 2}, generalCookie, http.StatusCreated},
		{"create user needs admin", "POST", "/users", models.CreateUserRequest{Username: "frank", Password: "long-enough", Role: auth.RoleGeneral}, generalCookie, http.StatusForbidden},
		{"create user as admin", "POST", "/users", models.CreateUserRequest{Username: "frank", Password: "long-enough", Role: auth.RoleGeneral}, adminCookie, http.StatusCreated},
		{"save_state needs admin", "POST", "/save_state", nil, generalCookie, http.StatusForbidden},
		{"save_state as admin", "POST", "/save_state", nil, adminCookie, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.cookie != nil {
				req = testutil.MakeRequest(tt.method, tt.path, tt.body, tt.cookie)
			} else {
				req = testutil.MakeRequest(tt.method, tt.path, tt.body)
			}

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/login", nil))
	testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
}

// Full lifecycle: bootstrap, log in, create a poll, vote, save, restart,
// and keep using the same cookie against the restored state.
func TestLifecycle_SurvivesRestart(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "polls.json")
	gw := db.NewFileStore(statePath)
	st, info := testutil.NewTestState(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, gw, cfg)

	// Log in with the bootstrap credentials over HTTP
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/login", models.LoginRequest{
		Username: info.AdminUsername,
		Password: info.AdminPassword,
	}))
	testutil.AssertStatus(t, w, http.StatusOK)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set the session cookie")
	}

	// Create a poll and vote on it
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{
		Candidates: []string{"red", "green", "blue"}, MinScore: 0, MaxScore: 5,
	}))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreatePollResponse
	testutil.AssertJSON(t, w, &created)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", fmt.Sprintf("/polls/%d/votes", created.PollID),
		models.Vote{0, 5, 1}, cookie))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Persist as admin
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/save_state", nil, cookie))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	// Simulate a restart: load the snapshot into a fresh state
	snap, err := gw.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	restored, err := state.FromSnapshot(snap, cfg.SessionTTL())
	if err != nil {
		t.Fatalf("FromSnapshot() error = %v", err)
	}
	mux2 := NewRouter(restored, gw, cfg)

	// The pre-restart cookie still authenticates
	w = httptest.NewRecorder()
	mux2.ServeHTTP(w, testutil.MakeRequest("GET", "/me", nil, cookie))
	testutil.AssertStatus(t, w, http.StatusOK)

	var identity models.IdentityResponse
	testutil.AssertJSON(t, w, &identity)
	if identity.Username != info.AdminUsername {
		t.Errorf("restored identity = %+v", identity)
	}

	// The vote survived too
	w = httptest.NewRecorder()
	mux2.ServeHTTP(w, testutil.MakeRequest("GET", fmt.Sprintf("/polls/%d/votes", created.PollID), nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var votes []models.Vote
	testutil.AssertJSON(t, w, &votes)
	if len(votes) != 1 {
		t.Errorf("got %d votes after restart, want 1", len(votes))
	}
}

func TestExpiredSessionOverHTTP(t *testing.T) {
	st, info, err := state.Bootstrap(time.Nanosecond)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	gw := db.NewFileStore(filepath.Join(t.TempDir(), "polls.json"))
	mux := NewRouter(st, gw, testutil.GetTestConfig())

	cookie := testutil.LoginAs(t, st, info.AdminUsername, info.AdminPassword)
	time.Sleep(time.Millisecond)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/me", nil, cookie))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestConcurrentVotesOverHTTP(t *testing.T) {
	mux, st, info, _ := newTestRouter(t)
	cookie := testutil.LoginAs(t, st, info.AdminUsername, info.AdminPassword)
	pollID := testutil.CreateTestPoll(t, st, []string{"a", "b"}, 0, 5)

	const voters = 20
	const votesEach = 10

	var wg sync.WaitGroup
	var failures atomic.Int64
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < votesEach; j++ {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, testutil.MakeRequest("POST",
					fmt.Sprintf("/polls/%d/votes", pollID), models.Vote{1, 4}, cookie))
				if w.Code != http.StatusCreated {
					failures.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if n := failures.Load(); n != 0 {
		t.Errorf("%d concurrent votes failed", n)
	}

	votes, err := st.ListVotes(pollID)
	if err != nil {
		t.Fatalf("ListVotes() error = %v", err)
	}
	if len(votes) != voters*votesEach {
		t.Errorf("got %d votes, want %d", len(votes), voters*votesEach)
	}
}
