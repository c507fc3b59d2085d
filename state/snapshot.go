// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/poll-server/auth"
	"github.com/danielhkuo/poll-server/models"
	"github.com/danielhkuo/poll-server/session"
)

// ErrCorruptSnapshot is returned by FromSnapshot when a loaded snapshot
// fails structural validation. Callers fall back to Bootstrap.
var ErrCorruptSnapshot = errors.New("snapshot failed validation")

// Snapshot is the serializable form of the whole application state. It is
// the document the persistence gateway saves and loads.
type Snapshot struct {
	SigningKey  []byte                    `json:"signing_key"`
	PollCounter int                       `json:"poll_counter"`
	Users       map[string]auth.User      `json:"users"`
	Sessions    map[string]session.Record `json:"sessions"`
	Polls       map[int]*models.Poll      `json:"polls"`
}

// Snapshot copies the full state out under its locks. Locks are taken one
// at a time, never nested; collections touched by other requests between
// two lock acquisitions may differ, which is acceptable because the
// domains are independent.
func (s *State) Snapshot() *Snapshot {
	snap := &Snapshot{SigningKey: s.SigningKey()}

	s.counterMu.Lock()
	snap.PollCounter = s.pollCounter
	s.counterMu.Unlock()

	s.usersMu.RLock()
	snap.Users = make(map[string]auth.User, len(s.users))
	for username, user := range s.users {
		snap.Users[username] = copyUser(user)
	}
	s.usersMu.RUnlock()

	snap.Sessions = s.sessions.Snapshot()

	s.pollsMu.RLock()
	snap.Polls = make(map[int]*models.Poll, len(s.polls))
	for id, poll := range s.polls {
		snap.Polls[id] = copyPoll(poll)
	}
	s.pollsMu.RUnlock()

	return snap
}

// FromSnapshot rebuilds a state from a loaded snapshot. Structural
// problems fail with ErrCorruptSnapshot so the caller can bootstrap
// instead; a partially valid snapshot is never accepted.
func FromSnapshot(snap *Snapshot, sessionTTL time.Duration) (*State, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: empty document", ErrCorruptSnapshot)
	}
	if len(snap.SigningKey) != auth.SigningKeyLength {
		return nil, fmt.Errorf("%w: signing key is %d bytes, want %d",
			ErrCorruptSnapshot, len(snap.SigningKey), auth.SigningKeyLength)
	}

	users := make(map[string]auth.User, len(snap.Users))
	for username, user := range snap.Users {
		if !auth.ValidRole(user.Role) {
			return nil, fmt.Errorf("%w: user %q has unknown role %q",
				ErrCorruptSnapshot, username, user.Role)
		}
		if len(user.PasswordHash) == 0 || len(user.PasswordSalt) == 0 {
			return nil, fmt.Errorf("%w: user %q has empty credentials",
				ErrCorruptSnapshot, username)
		}
		users[username] = copyUser(user)
	}

	polls := make(map[int]*models.Poll, len(snap.Polls))
	maxID := 0
	for id, poll := range snap.Polls {
		if poll == nil {
			return nil, fmt.Errorf("%w: poll %d is null", ErrCorruptSnapshot, id)
		}
		if poll.Metadata.ID != id {
			return nil, fmt.Errorf("%w: poll %d keyed under id %d",
				ErrCorruptSnapshot, poll.Metadata.ID, id)
		}
		if len(poll.Metadata.Candidates) == 0 {
			return nil, fmt.Errorf("%w: poll %d has no candidates", ErrCorruptSnapshot, id)
		}
		if poll.Metadata.MinScore > poll.Metadata.MaxScore {
			return nil, fmt.Errorf("%w: poll %d has inverted score range", ErrCorruptSnapshot, id)
		}
		if id > maxID {
			maxID = id
		}
		polls[id] = copyPoll(poll)
	}

	// The counter must stay ahead of every issued id or new polls would
	// collide with restored ones.
	if snap.PollCounter < maxID {
		return nil, fmt.Errorf("%w: poll counter %d behind max poll id %d",
			ErrCorruptSnapshot, snap.PollCounter, maxID)
	}

	sessions := session.NewStore(sessionTTL)
	sessions.Restore(snap.Sessions)

	key := make([]byte, auth.SigningKeyLength)
	copy(key, snap.SigningKey)

	return &State{
		users:       users,
		sessions:    sessions,
		polls:       polls,
		pollCounter: snap.PollCounter,
		signingKey:  key,
	}, nil
}

func copyUser(u auth.User) auth.User {
	salt := make([]byte, len(u.PasswordSalt))
	copy(salt, u.PasswordSalt)
	hash := make([]byte, len(u.PasswordHash))
	copy(hash, u.PasswordHash)
	u.PasswordSalt = salt
	u.PasswordHash = hash
	return u
}

func copyPoll(p *models.Poll) *models.Poll {
	out := &models.Poll{
		Metadata: copyMetadata(p.Metadata),
		Votes:    p.ListVotes(),
	}
	return out
}
