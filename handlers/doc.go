// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

/*
Package handlers contains HTTP request handlers for the poll block API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - BlockHandler: stateless adapters over the block package
    (reconcile, state derivation, schema defaults)
  - PollHandler: poll registry (register/update, snapshot lookup)
  - VotingHandler: vote intake with one-response-per-device handling
  - ResultsHandler: per-answer tallies

Database-backed handlers are created with *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Block Endpoints

Pure logic, no storage touched:

	POST /blocks/poll/reconcile → {patch, changed}
	POST /blocks/poll/state     → derived presentation state
	GET  /blocks/poll/defaults  → schema defaults

# Poll Registry

The editor's data layer registers the block's client-generated poll id
and reads back the server correlation:

	POST /polls           → RegisterPoll (returns api_key, numeric id,
	                        viewResultsUrl, client_id → id pairs)
	GET  /polls/{clientId} → GetPoll (the snapshot; 404 until registered)

Updates re-POST /polls with the X-Api-Key header.

# Voting and Results

	POST /polls/{clientId}/votes   → SubmitVote
	GET  /polls/{clientId}/results → GetResults

SubmitVote rejects closed polls (403), multiple answers on
single-choice polls (400), unknown answer ids (400), and a repeat
device when hasOneResponsePerComputer is set (409, keyed on a salted
IP hash). The response carries the confirmation configured on the
poll (results link, thank-you, custom text, or redirect).
*/
package handlers
