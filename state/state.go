// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"errors"
	"sync"
	"time"

	"github.com/danielhkuo/poll-server/auth"
	"github.com/danielhkuo/poll-server/models"
	"github.com/danielhkuo/poll-server/session"
)

var (
	// ErrBadCredentials covers unknown usernames and wrong passwords
	// alike, so login failures never reveal which one it was.
	ErrBadCredentials = errors.New("invalid username or password")

	ErrNoCookie     = errors.New("no session cookie present")
	ErrUserExists   = errors.New("username already taken")
	ErrUnknownRole  = errors.New("unknown role")
	ErrPollNotFound = errors.New("poll not found")
)

// Identity is the result of a successful authentication.
type Identity struct {
	Username string
	Role     string
}

// State is the process-wide aggregate of users, sessions, polls, and the
// poll id counter. Each collection has its own lock; locks are never
// nested and never held across anything that can block on I/O.
type State struct {
	usersMu sync.RWMutex
	users   map[string]auth.User

	sessions *session.Store

	pollsMu sync.RWMutex
	polls   map[int]*models.Poll

	counterMu   sync.Mutex
	pollCounter int

	// signingKey is fixed for the process lifetime once set.
	signingKey []byte
}

// Login verifies credentials and issues a session token. Unknown user and
// wrong password both fail with ErrBadCredentials.
func (s *State) Login(username, password string) (string, error) {
	s.usersMu.RLock()
	user, ok := s.users[username]
	s.usersMu.RUnlock()

	if !ok || !user.Verify(password) {
		return "", ErrBadCredentials
	}

	return s.sessions.Issue(username)
}

// AuthenticateRequest resolves a cookie value to an identity: verify the
// cookie signature, validate the session token, then look up the user's
// role. Every protected operation goes through here first.
//
// Failures surface as ErrNoCookie, auth.ErrTamperedCookie,
// session.ErrInvalidToken, or session.ErrExpired.
func (s *State) AuthenticateRequest(cookieValue string) (Identity, error) {
	if cookieValue == "" {
		return Identity{}, ErrNoCookie
	}

	token, err := auth.VerifyCookieValue(cookieValue, s.signingKey)
	if err != nil {
		return Identity{}, err
	}

	username, err := s.sessions.Validate(token)
	if err != nil {
		return Identity{}, err
	}

	s.usersMu.RLock()
	user, ok := s.users[username]
	s.usersMu.RUnlock()

	if !ok {
		// Session survived a state reload that dropped its user.
		return Identity{}, session.ErrInvalidToken
	}

	return Identity{Username: username, Role: user.Role}, nil
}

// CreateUser adds a credential record administratively. Records are never
// mutated after creation; there is no password-change path.
func (s *State) CreateUser(username, role, password string) error {
	if !auth.ValidRole(role) {
		return ErrUnknownRole
	}

	user, err := auth.NewUser(role, password)
	if err != nil {
		return err
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, exists := s.users[username]; exists {
		return ErrUserExists
	}
	s.users[username] = user
	return nil
}

// NextPollID atomically increments the id counter and returns the new
// value. Issued ids are unique and strictly increasing.
func (s *State) NextPollID() int {
	s.counterMu.Lock()
	defer s.counterMu.Unlock()

	s.pollCounter++
	return s.pollCounter
}

// SigningKey returns a copy of the cookie signing key.
func (s *State) SigningKey() []byte {
	key := make([]byte, len(s.signingKey))
	copy(key, s.signingKey)
	return key
}

// PurgeSessions drops expired session records. Maintenance only; the
// request path never calls this.
func (s *State) PurgeSessions() int {
	return s.sessions.Purge()
}

// BootstrapInfo reports the one-time credentials created by Bootstrap.
// The password exists only here; the stored record keeps a salted hash.
type BootstrapInfo struct {
	AdminUsername string
	AdminPassword string
}

// AdminUsername is the username of the bootstrap admin user.
const AdminUsername = "admin"

// Bootstrap builds a fresh state: empty collections, a new signing key,
// and one admin user with a random password surfaced via BootstrapInfo.
// Used when no snapshot is loadable.
func Bootstrap(sessionTTL time.Duration) (*State, BootstrapInfo, error) {
	key, err := auth.NewSigningKey()
	if err != nil {
		return nil, BootstrapInfo{}, err
	}

	password, err := auth.GeneratePassword()
	if err != nil {
		return nil, BootstrapInfo{}, err
	}

	admin, err := auth.NewUser(auth.RoleAdmin, password)
	if err != nil {
		return nil, BootstrapInfo{}, err
	}

	st := &State{
		users:      map[string]auth.User{AdminUsername: admin},
		sessions:   session.NewStore(sessionTTL),
		polls:      make(map[int]*models.Poll),
		signingKey: key,
	}

	return st, BootstrapInfo{AdminUsername: AdminUsername, AdminPassword: password}, nil
}
