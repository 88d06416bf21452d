// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

/*
Package router defines HTTP routes for the poll block API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Block logic (stateless, no storage):

	POST /blocks/poll/reconcile - Assign missing poll/answer ids
	POST /blocks/poll/state     - Derive presentation state
	GET  /blocks/poll/defaults  - Attribute schema defaults

Poll registry (editor data layer):

	POST /polls             - Register or update a poll (X-Api-Key on update)
	GET  /polls/{clientId}  - Snapshot: numeric id, results URL, id mapping

Voting and results (public):

	POST /polls/{clientId}/votes   - Submit a vote
	GET  /polls/{clientId}/results - Per-answer tallies

# Handler Initialization

The router creates handler instances with dependency injection:

	blockHandler := handlers.NewBlockHandler(cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
*/
package router
