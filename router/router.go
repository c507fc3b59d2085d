// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/poll-server/auth"
	"github.com/danielhkuo/poll-server/cliparse"
	"github.com/danielhkuo/poll-server/db"
	"github.com/danielhkuo/poll-server/handlers"
	"github.com/danielhkuo/poll-server/middleware"
	"github.com/danielhkuo/poll-server/state"
)

func NewRouter(st *state.State, gw db.Gateway, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(st, cfg)
	pollHandler := handlers.NewPollHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, cfg)
	userHandler := handlers.NewUserHandler(st, cfg)
	stateHandler := handlers.NewStateHandler(st, gw)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions
	mux.HandleFunc("POST /login", middleware.WithLogging(sessionHandler.Login))
	mux.HandleFunc("GET /me", middleware.WithLogging(middleware.RequireAuth(st, sessionHandler.Me)))

	// Polls are public; only voting needs a session
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	// Votes
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(middleware.RequireAuth(st, votingHandler.AddVote)))
	mux.HandleFunc("GET /polls/{id}/votes", middleware.WithLogging(votingHandler.ListVotes))

	// Administration
	mux.HandleFunc("POST /users", middleware.WithLogging(middleware.RequireRole(st, auth.RoleAdmin, userHandler.CreateUser)))
	mux.HandleFunc("POST /save_state", middleware.WithLogging(middleware.RequireRole(st, auth.RoleAdmin, stateHandler.SaveState)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("poll-server API v1"))
	})

	return mux
}
