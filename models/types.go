// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Vote validation errors
var (
	ErrInvalidVoteLength = errors.New("vote has wrong number of scores")
	ErrOutsideScoreRange = errors.New("vote contains score outside accepted range")
)

// Poll creation errors
var (
	ErrNoCandidates       = errors.New("poll must have at least one candidate")
	ErrInvertedScoreRange = errors.New("min_score must not exceed max_score")
)

// Vote is one ballot: a score per candidate, in candidate order.
type Vote []int

// PollMetadata describes a poll without its votes.
type PollMetadata struct {
	ID         int      `json:"id"`
	Candidates []string `json:"candidates"`
	MinScore   int      `json:"min_score"`
	MaxScore   int      `json:"max_score"`
}

// Poll is a candidate list with an inclusive score range and the votes
// cast against it. Votes are mutated only through AddVote.
type Poll struct {
	Metadata PollMetadata `json:"metadata"`
	Votes    []Vote       `json:"votes"`
}

// NewPoll creates an empty poll. Candidate list and score bounds are
// validated once here; AddVote relies on them afterwards.
func NewPoll(id int, candidates []string, minScore, maxScore int) (*Poll, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if minScore > maxScore {
		return nil, ErrInvertedScoreRange
	}

	return &Poll{
		Metadata: PollMetadata{
			ID:         id,
			Candidates: candidates,
			MinScore:   minScore,
			MaxScore:   maxScore,
		},
		Votes: []Vote{},
	}, nil
}

// AddVote validates and appends a ballot. The vote must have exactly one
// score per candidate and every score must lie in [MinScore, MaxScore].
func (p *Poll) AddVote(vote Vote) error {
	if len(vote) != len(p.Metadata.Candidates) {
		return ErrInvalidVoteLength
	}
	for _, score := range vote {
		if score < p.Metadata.MinScore || score > p.Metadata.MaxScore {
			return ErrOutsideScoreRange
		}
	}
	p.Votes = append(p.Votes, vote)
	return nil
}

// ListVotes returns a copy of the ballots so callers never hold a
// reference into the poll's interior slice.
func (p *Poll) ListVotes() []Vote {
	out := make([]Vote, len(p.Votes))
	for i, vote := range p.Votes {
		c := make(Vote, len(vote))
		copy(c, vote)
		out[i] = c
	}
	return out
}

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Candidates []string `json:"candidates"`
	MinScore   int      `json:"min_score"`
	MaxScore   int      `json:"max_score"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Response types

type CreatePollResponse struct {
	PollID int `json:"poll_id"`
}

type CreateUserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type IdentityResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
