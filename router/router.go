// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/stakeshare/cliparse"
	"github.com/danielhkuo/stakeshare/db"
	"github.com/danielhkuo/stakeshare/handlers"
	"github.com/danielhkuo/stakeshare/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(store, cfg)
	votingHandler := handlers.NewVotingHandler(store, cfg)
	resultsHandler := handlers.NewResultsHandler(store, cfg)
	participantHandler := handlers.NewParticipantHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session collection (admin operations), served at both / and /api
	for _, prefix := range []string{"/{$}", "/api"} {
		mux.HandleFunc("POST "+prefix, middleware.WithLogging(sessionHandler.CreateSession))
		mux.HandleFunc("GET "+prefix, middleware.WithLogging(sessionHandler.ListSessions))
	}

	// Single session
	mux.HandleFunc("GET /api/{sessionKey}", middleware.WithLogging(resultsHandler.GetSession))
	mux.HandleFunc("POST /api/{sessionKey}", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("PATCH /api/{sessionKey}", middleware.WithLogging(participantHandler.UpdateParticipant))
	mux.HandleFunc("DELETE /api/{sessionKey}", middleware.WithLogging(sessionHandler.DeleteSession))

	return mux
}
