// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the in-memory session store.

# Lifecycle

Each token moves through three states, driven only by time:

	Active  (now < expiration)
	Expired (now >= expiration)
	Absent  (never issued, purged, or state reloaded without it)

There is no logout or revocation path; a session ends by expiring.

# Usage

	store := session.NewStore(7 * 24 * time.Hour)
	token, err := store.Issue("alice")
	username, err := store.Validate(token)

Validate distinguishes two failures:

  - ErrInvalidToken: the token was never issued (or was purged)
  - ErrExpired: the token exists but its expiration has passed

Expired records stay in the map until Purge is called or the process
restarts. Purge is a maintenance operation for long-lived processes and is
never run from the request path.

# Persistence

Snapshot and Restore copy the session map in and out for the state
snapshot document. Restored records keep their original expirations, so
sessions survive a restart only until they would have expired anyway.
*/
package session
