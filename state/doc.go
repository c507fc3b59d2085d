// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package state holds the process-wide shared application state: the user
map, the session store, the poll map, and the poll id counter.

# Locking Discipline

Each collection is guarded by its own lock:

  - users: sync.RWMutex
  - sessions: locked inside session.Store
  - polls: sync.RWMutex
  - poll id counter: sync.Mutex

Locks are independent and never nested, so there is no lock ordering to
get wrong. Critical sections are in-memory map operations only; no lock
is ever held across disk or network I/O. Nothing outside this package
holds a reference to the raw maps - all access goes through synchronized
accessor methods that copy data out.

# Authentication Entry Points

	token, err := st.Login(username, password)
	identity, err := st.AuthenticateRequest(cookieValue)

Login fails with a single ErrBadCredentials for unknown users and wrong
passwords alike. AuthenticateRequest composes cookie verification,
session validation, and role lookup; it is the sole gate in front of
every protected operation.

# Poll Operations

CreatePoll, ListPolls, GetPoll, DeletePoll, AddVote, and ListVotes wrap
the poll map under its lock. NextPollID issues unique, strictly
increasing ids under the counter mutex.

# Bootstrap and Snapshots

When no snapshot is loadable, Bootstrap creates a fresh state with a new
signing key and one admin user whose random password is surfaced once in
BootstrapInfo:

	st, info, err := state.Bootstrap(sessionTTL)

Snapshot copies the whole state into a serializable document; FromSnapshot
rebuilds a state from one, failing with ErrCorruptSnapshot (and accepting
nothing) when validation finds structural damage.
*/
package state
