// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema and wraps every query the
handlers need.

# Drivers

Two dialects are supported, selected by DATABASE_TYPE:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go), opened with foreign_keys enabled

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	err = db.CreateSchema(conn, cfg.DatabaseType)

Both drivers accept $n placeholders, so the queries are shared.

# Tables

  - session: topic, description, stake and scoring method, keyed by session_key
  - participant: name, description, role/ppp weights, confirmed flag
  - vote: one row per (voter, recipient) with share and reason

# Relationships

	session 1──* participant
	session 1──* vote
	participant 1──* vote (as voter and as recipient)

All foreign keys use ON DELETE CASCADE, so DeleteSession removes everything.

# Store

Store is a thin adapter with no business rules:

	store := db.NewStore(conn)
	id, err := store.CreateSession(ctx, session, participants)

CreateSession and SubmitVote each run in a single transaction. SubmitVote
checks for an existing vote inside the transaction and the vote table's
UNIQUE (session_id, voter_id, recipient_id) rejects a racing duplicate;
both cases return ErrAlreadyVoted.

Lookups that find nothing return ErrSessionNotFound or
ErrParticipantNotFound.
*/
package db
