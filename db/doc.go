// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for the configured database
type:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. Both dialects (sqlite, postgres) produce the same logical
schema; only id generation and boolean literals differ.

# Tables

  - poll: Server-side poll record, keyed by the block's client id
  - answer: Answers with client_id → numeric id correlation
  - vote: One row per (response, answer), with a salted voter hash

# Relationships

	poll 1──* answer
	poll 1──* vote
	answer 1──* vote

All foreign keys use ON DELETE CASCADE.

# Indexes

  - poll.client_id (unique)
  - answer.(poll_id, client_id) (unique)
  - vote.poll_id
  - vote.(poll_id, voter_hash) — backs the one-response-per-device check
*/
package db
