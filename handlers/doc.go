// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the poll server.

# Handler Types

Each handler is a struct holding the shared state and config:

  - SessionHandler: login and identity echo
  - PollHandler: poll CRUD
  - VotingHandler: ballot submission and listing
  - UserHandler: administrative user creation
  - StateHandler: snapshot persistence

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(st, cfg)

# Authentication Flow

	POST /login → Login (sets signed session cookie)
	GET  /me    → Me (requires auth)

Login failures use one message for unknown users and wrong passwords, so
usernames cannot be enumerated. The cookie value is the session token
plus an HMAC tag; the guard middleware verifies it before any handler
here runs.

# Poll Lifecycle

	POST   /polls      → CreatePoll
	GET    /polls      → ListPolls
	GET    /polls/{id} → GetPoll
	DELETE /polls/{id} → DeletePoll

# Voting

	POST /polls/{id}/votes → AddVote (requires auth)
	GET  /polls/{id}/votes → ListVotes

A ballot must carry exactly one score per candidate, each inside the
poll's [min_score, max_score]; violations come back as 422.

# Administration

	POST /users      → CreateUser (admin only)
	POST /save_state → SaveState (admin only)

SaveState writes the whole state snapshot through the persistence
gateway; a failed write is a 500, never a silent loss.
*/
package handlers
