// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application in the
// dialect of the given database type ("sqlite" or "postgres").
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	var schema string
	switch databaseType {
	case "sqlite":
		schema = schemaSQLite
	case "postgres":
		schema = schemaPostgres
	default:
		return fmt.Errorf("unknown database type %q", databaseType)
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schemaSQLite = `
-- Polls (server-side record, correlated to the block's client id)
CREATE TABLE IF NOT EXISTS poll (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    client_id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    question TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    closed_state TEXT NOT NULL DEFAULT 'show-results' CHECK (closed_state IN ('show-results', 'hidden')),
    closed_after TIMESTAMP,
    is_multiple_choice BOOLEAN NOT NULL DEFAULT 0,
    has_one_response_per_computer BOOLEAN NOT NULL DEFAULT 0,
    confirm_message_type TEXT NOT NULL DEFAULT 'results',
    custom_confirm_message TEXT NOT NULL DEFAULT '',
    redirect_address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_client_id ON poll(client_id);

-- Answers
CREATE TABLE IF NOT EXISTS answer (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    client_id TEXT NOT NULL,
    text TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    UNIQUE (poll_id, client_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_poll_id ON answer(poll_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    answer_id INTEGER NOT NULL REFERENCES answer(id) ON DELETE CASCADE,
    voter_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(poll_id, voter_hash);
`

const schemaPostgres = `
-- Polls (server-side record, correlated to the block's client id)
CREATE TABLE IF NOT EXISTS poll (
    id BIGSERIAL PRIMARY KEY,
    client_id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    question TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    closed_state TEXT NOT NULL DEFAULT 'show-results' CHECK (closed_state IN ('show-results', 'hidden')),
    closed_after TIMESTAMP,
    is_multiple_choice BOOLEAN NOT NULL DEFAULT FALSE,
    has_one_response_per_computer BOOLEAN NOT NULL DEFAULT FALSE,
    confirm_message_type TEXT NOT NULL DEFAULT 'results',
    custom_confirm_message TEXT NOT NULL DEFAULT '',
    redirect_address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_poll_client_id ON poll(client_id);

-- Answers
CREATE TABLE IF NOT EXISTS answer (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    client_id TEXT NOT NULL,
    text TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    UNIQUE (poll_id, client_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_poll_id ON answer(poll_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    answer_id BIGINT NOT NULL REFERENCES answer(id) ON DELETE CASCADE,
    voter_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(poll_id, voter_hash);
`
