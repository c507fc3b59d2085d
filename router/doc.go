// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, gw, cfg)

# Endpoints

Health:

	GET /health

Sessions:

	POST /login - Verify credentials, set signed session cookie
	GET  /me    - Echo the authenticated identity (requires auth)

Polls (public):

	POST   /polls      - Create poll
	GET    /polls      - List poll metadata
	GET    /polls/{id} - Get one poll's metadata
	DELETE /polls/{id} - Delete a poll

Votes:

	POST /polls/{id}/votes - Cast a ballot (requires auth)
	GET  /polls/{id}/votes - List ballots

Administration (requires admin role):

	POST /users      - Create a user
	POST /save_state - Persist the state snapshot

# Authorization Policy

Which routes require a session is decided here, not in the state core:
voting, /me, user creation, and save_state are guarded; poll browsing and
creation are public, matching the reference behavior. Guards are composed
from middleware.RequireAuth and middleware.RequireRole.
*/
package router
