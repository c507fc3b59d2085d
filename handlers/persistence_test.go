// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/poll-server/db"
	"github.com/danielhkuo/poll-server/state"
	"github.com/danielhkuo/poll-server/testutil"
)

type failingGateway struct{}

func (failingGateway) Load() (*state.Snapshot, error) { return nil, errors.New("disk on fire") }
func (failingGateway) Save(*state.Snapshot) error     { return errors.New("disk on fire") }

func TestSaveState(t *testing.T) {
	st, _ := testutil.NewTestState(t)
	pollID := testutil.CreateTestPoll(t, st, []string{"a", "b"}, 0, 5)

	gw := db.NewFileStore(filepath.Join(t.TempDir(), "polls.json"))
	handler := NewStateHandler(st, gw)

	w := httptest.NewRecorder()
	handler.SaveState(w, testutil.MakeRequest("POST", "/save_state", nil))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	// The written snapshot loads back with the poll intact
	snap, err := gw.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	restored, err := state.FromSnapshot(snap, testutil.GetTestConfig().SessionTTL())
	if err != nil {
		t.Fatalf("FromSnapshot() error = %v", err)
	}
	if _, err := restored.GetPoll(pollID); err != nil {
		t.Errorf("restored state missing poll %d: %v", pollID, err)
	}
}

func TestSaveState_GatewayFailure(t *testing.T) {
	st, _ := testutil.NewTestState(t)
	handler := NewStateHandler(st, failingGateway{})

	w := httptest.NewRecorder()
	handler.SaveState(w, testutil.MakeRequest("POST", "/save_state", nil))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}
