// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the poll domain types and API request/response
types.

# Domain Types

  - Poll: candidate list, inclusive score bounds, and cast votes
  - PollMetadata: everything about a poll except its votes
  - Vote: one score per candidate, in candidate order

Polls are created with NewPoll, which validates the candidate list and
score bounds. Votes enter only through AddVote:

	err := poll.AddVote(models.Vote{0, 5, 1})

AddVote rejects a ballot whose length differs from the candidate count
(ErrInvalidVoteLength) or whose scores fall outside
[MinScore, MaxScore] (ErrOutsideScoreRange).

# Request Types

  - LoginRequest: username, password
  - CreatePollRequest: candidates, min_score, max_score
  - CreateUserRequest: username, role, password

# Response Types

  - IdentityResponse: username, role
  - CreatePollResponse: poll_id
  - CreateUserResponse: username, role
  - ErrorResponse: error, message
*/
package models
