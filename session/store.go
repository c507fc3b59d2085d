// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/danielhkuo/poll-server/auth"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("not a valid session token")
	ErrExpired      = errors.New("session expired")
)

// Record is the stored value for one session token.
type Record struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store maps opaque session tokens to their owning user and expiration.
// All methods are safe for concurrent use; the critical sections are
// in-memory map operations only.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Record
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty session store. A ttl <= 0 falls back to
// DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]Record),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue creates a session for username and returns the new token.
func (s *Store) Issue(username string) (string, error) {
	token, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}

	record := Record{
		Username:  username,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = record
	s.mu.Unlock()

	return token, nil
}

// Validate looks up a token and returns the owning username. An unknown
// token fails with ErrInvalidToken; a known but expired token fails with
// ErrExpired. Expired records are not removed here - Purge is a separate
// maintenance operation.
func (s *Store) Validate(token string) (string, error) {
	s.mu.RLock()
	record, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return "", ErrInvalidToken
	}
	if !s.now().Before(record.ExpiresAt) {
		return "", ErrExpired
	}
	return record.Username, nil
}

// Purge removes expired records and returns how many were dropped.
// Optional maintenance for long-lived processes; never called from the
// request path.
func (s *Store) Purge() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, record := range s.sessions {
		if !now.Before(record.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored records, expired ones included.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Snapshot returns a copy of the session map for persistence.
func (s *Store) Snapshot() map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Record, len(s.sessions))
	for token, record := range s.sessions {
		out[token] = record
	}
	return out
}

// Restore replaces the session map with records from a snapshot.
func (s *Store) Restore(records map[string]Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]Record, len(records))
	for token, record := range records {
		s.sessions[token] = record
	}
}
