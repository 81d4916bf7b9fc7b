// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/stakeshare/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	var ddl string
	switch dbType {
	case cliparse.DatabasePostgres:
		ddl = postgresSchema
	case cliparse.DatabaseSQLite:
		ddl = sqliteSchema
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Sessions
CREATE TABLE IF NOT EXISTS session (
    id BIGSERIAL PRIMARY KEY,
    session_key TEXT NOT NULL UNIQUE,
    topic TEXT NOT NULL,
    description TEXT NOT NULL,
    stake DOUBLE PRECISION NOT NULL CHECK (stake > 0),
    method TEXT NOT NULL DEFAULT 'weighted' CHECK (method IN ('weighted', 'mean')),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id BIGSERIAL PRIMARY KEY,
    session_id BIGINT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    role_weight DOUBLE PRECISION NOT NULL DEFAULT 1,
    ppp_weight DOUBLE PRECISION NOT NULL DEFAULT 1,
    confirmed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_participant_session_id ON participant(session_id);

-- Votes (one row per voter/recipient pair)
CREATE TABLE IF NOT EXISTS vote (
    id BIGSERIAL PRIMARY KEY,
    session_id BIGINT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    voter_id BIGINT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    recipient_id BIGINT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    share DOUBLE PRECISION NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (session_id, voter_id, recipient_id),
    CHECK (voter_id <> recipient_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_session_id ON vote(session_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(session_id, voter_id);
`

// SQLite needs foreign_keys enabled per connection for the cascades; Open
// sets it through the DSN.
const sqliteSchema = `
-- Sessions
CREATE TABLE IF NOT EXISTS session (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_key TEXT NOT NULL UNIQUE,
    topic TEXT NOT NULL,
    description TEXT NOT NULL,
    stake REAL NOT NULL CHECK (stake > 0),
    method TEXT NOT NULL DEFAULT 'weighted' CHECK (method IN ('weighted', 'mean')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    role_weight REAL NOT NULL DEFAULT 1,
    ppp_weight REAL NOT NULL DEFAULT 1,
    confirmed BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_participant_session_id ON participant(session_id);

-- Votes (one row per voter/recipient pair)
CREATE TABLE IF NOT EXISTS vote (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    voter_id INTEGER NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    recipient_id INTEGER NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    share REAL NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (session_id, voter_id, recipient_id),
    CHECK (voter_id <> recipient_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_session_id ON vote(session_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(session_id, voter_id);
`
