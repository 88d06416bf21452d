// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

/*
Package main provides the entry point for the Crowdsignal Forms poll
block API server.

The service backs the "Poll" content-editor block: it reconciles the
block's client-generated identifiers, derives the block's presentation
state (closed/hidden/results/edit-lock), and keeps the server-side poll
registry that correlates client answer ids with numeric server ids,
takes votes, and tallies results.

# Starting the Server

The server requires environment variables or CLI flags for
configuration (a .env file is honored):

	DATABASE_URL=forms.db go run main.go

Or with flags:

	go run main.go -p 3320 -t sqlite -d forms.db

# Configuration

Required settings:

  - DATABASE_URL (-d): Postgres DSN or sqlite path
  - API_KEY_SALT (--api-salt): Secret for poll API key HMAC
  - RESULTS_SLUG_SALT (--results-salt): Secret for results slug generation

Optional settings:

  - PORT (-p): Server port (default: 3320)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (--base-url): Public base for results links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - block: Pure block logic (id reconciliation, state derivation,
    results correlation)
  - models: Attribute schema and request/response types
  - handlers: HTTP request handlers (blocks, polls, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - auth: Key/slug derivation and voter hashing
  - db: Schema creation (sqlite and postgres dialects)
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
