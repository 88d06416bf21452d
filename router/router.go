// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/arpitjain099/crowdsignal-forms/cliparse"
	"github.com/arpitjain099/crowdsignal-forms/handlers"
	"github.com/arpitjain099/crowdsignal-forms/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	blockHandler := handlers.NewBlockHandler(cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Block logic (stateless)
	mux.HandleFunc("POST /blocks/poll/reconcile", middleware.WithLogging(blockHandler.Reconcile))
	mux.HandleFunc("POST /blocks/poll/state", middleware.WithLogging(blockHandler.State))
	mux.HandleFunc("GET /blocks/poll/defaults", middleware.WithLogging(blockHandler.Defaults))

	// Poll registry (editor data layer)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.RegisterPoll))
	mux.HandleFunc("GET /polls/{clientId}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting and results (public)
	mux.HandleFunc("POST /polls/{clientId}/votes", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("GET /polls/{clientId}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("crowdsignal-forms API v1"))
	})

	return mux
}
