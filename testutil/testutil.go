// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/poll-server/auth"
	"github.com/danielhkuo/poll-server/cliparse"
	"github.com/danielhkuo/poll-server/state"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3000,
		StateFile:       "polls.json",
		DatabaseType:    "sqlite",
		SessionTTLHours: 7 * 24,
	}
}

// NewTestState bootstraps a fresh state and returns it with its one-time
// admin credentials
func NewTestState(t *testing.T) (*state.State, state.BootstrapInfo) {
	t.Helper()

	st, info, err := state.Bootstrap(GetTestConfig().SessionTTL())
	if err != nil {
		t.Fatalf("Failed to bootstrap state: %v", err)
	}
	return st, info
}

// CreateTestUser adds a user with a fixed password and returns the password
func CreateTestUser(t *testing.T, st *state.State, username, role string) string {
	t.Helper()

	password := "password-for-" + username
	if err := st.CreateUser(username, role, password); err != nil {
		t.Fatalf("Failed to create test user %q: %v", username, err)
	}
	return password
}

// LoginAs logs a user in through the state core and returns a signed
// session cookie ready to attach to requests
func LoginAs(t *testing.T, st *state.State, username, password string) *http.Cookie {
	t.Helper()

	token, err := st.Login(username, password)
	if err != nil {
		t.Fatalf("Failed to log in as %q: %v", username, err)
	}
	return &http.Cookie{
		Name:  auth.SessionCookie,
		Value: auth.SignToken(token, st.SigningKey()),
	}
}

// CreateTestPoll creates a poll directly in the state and returns its id
func CreateTestPoll(t *testing.T, st *state.State, candidates []string, minScore, maxScore int) int {
	t.Helper()

	metadata, err := st.CreatePoll(candidates, minScore, maxScore)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return metadata.ID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
