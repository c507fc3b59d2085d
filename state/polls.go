// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"sort"

	"github.com/danielhkuo/poll-server/models"
)

// CreatePoll allocates a new id and inserts a poll. Validation errors
// from models.NewPoll pass through unchanged.
func (s *State) CreatePoll(candidates []string, minScore, maxScore int) (models.PollMetadata, error) {
	id := s.NextPollID()

	poll, err := models.NewPoll(id, candidates, minScore, maxScore)
	if err != nil {
		return models.PollMetadata{}, err
	}

	s.pollsMu.Lock()
	s.polls[id] = poll
	s.pollsMu.Unlock()

	return copyMetadata(poll.Metadata), nil
}

// ListPolls returns metadata for every poll, ordered by id.
func (s *State) ListPolls() []models.PollMetadata {
	s.pollsMu.RLock()
	out := make([]models.PollMetadata, 0, len(s.polls))
	for _, poll := range s.polls {
		out = append(out, copyMetadata(poll.Metadata))
	}
	s.pollsMu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetPoll returns metadata for one poll.
func (s *State) GetPoll(id int) (models.PollMetadata, error) {
	s.pollsMu.RLock()
	defer s.pollsMu.RUnlock()

	poll, ok := s.polls[id]
	if !ok {
		return models.PollMetadata{}, ErrPollNotFound
	}
	return copyMetadata(poll.Metadata), nil
}

// DeletePoll removes a poll and its votes.
func (s *State) DeletePoll(id int) error {
	s.pollsMu.Lock()
	defer s.pollsMu.Unlock()

	if _, ok := s.polls[id]; !ok {
		return ErrPollNotFound
	}
	delete(s.polls, id)
	return nil
}

// AddVote validates and records a ballot against a poll.
func (s *State) AddVote(id int, vote models.Vote) error {
	s.pollsMu.Lock()
	defer s.pollsMu.Unlock()

	poll, ok := s.polls[id]
	if !ok {
		return ErrPollNotFound
	}
	return poll.AddVote(vote)
}

// ListVotes returns a copy of a poll's ballots.
func (s *State) ListVotes(id int) ([]models.Vote, error) {
	s.pollsMu.RLock()
	defer s.pollsMu.RUnlock()

	poll, ok := s.polls[id]
	if !ok {
		return nil, ErrPollNotFound
	}
	return poll.ListVotes(), nil
}

// copyMetadata copies poll metadata so callers never share the interior
// candidates slice.
func copyMetadata(m models.PollMetadata) models.PollMetadata {
	candidates := make([]string, len(m.Candidates))
	copy(candidates, m.Candidates)
	m.Candidates = candidates
	return m
}
