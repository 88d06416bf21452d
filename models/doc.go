// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

/*
Package models defines the poll block attribute schema and the request,
response, and domain types for the API.

# Attribute Schema

PollAttributes is the persisted field set of one poll block instance. Its
JSON names are a compatibility contract with document storage, server-side
rendering, and data export — never rename a field. DefaultAttributes
returns what a freshly inserted block starts from:

	attrs := models.DefaultAttributes()
	// three blank answers, pollStatus "open", closedPollState "show-results"

# Snapshot Types

PollSnapshot is the read model returned for a registered poll:

  - ID: server-assigned numeric poll id
  - ViewResultsURL: hosted results page
  - Answers: client_id → numeric id pairs for results correlation

# Request Types

Types for parsing incoming JSON:

  - ReconcileRequest: attributes
  - StateRequest: attributes + editor context
  - RegisterPollRequest: attributes
  - SubmitVoteRequest: answerIds

# Domain Types

Poll is the server-side poll record: the registry's view of one block,
keyed by the client-generated id with a server-assigned numeric id.

# Response Types

  - RegisterPollResponse: id, api_key, viewResultsUrl, answers
  - SubmitVoteResponse: confirmation, message, redirectAddress
  - PollResultsResponse: id, viewResultsUrl, answers, total
  - ErrorResponse: error, message

# Constants

Poll status:

	PollStatusOpen   = "open"
	PollStatusClosed = "closed"

Closed-poll behavior:

	ClosedShowResults = "show-results"
	ClosedHidden      = "hidden"

Confirmation message type:

	ConfirmResults    = "results"
	ConfirmThankYou   = "thank-you"
	ConfirmCustomText = "custom-text"
	ConfirmRedirect   = "redirect"
*/
package models
