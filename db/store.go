// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/stakeshare/models"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadyVoted        = errors.New("participant has already voted in this session")
)

// Store issues the parameterized queries behind every handler.
// It holds no business rules; validation lives in the handlers.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// queryRower is satisfied by both *sql.DB and *sql.Tx
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateSession inserts the session and all of its participants in one
// transaction and returns the new session ID.
func (s *Store) CreateSession(ctx context.Context, session models.Session, participants []models.Participant) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sessionID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO session (session_key, topic, description, stake, method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, session.Key, session.Topic, session.Description, session.Stake, session.Method).Scan(&sessionID)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}

	for _, p := range participants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO participant (session_id, name, description, role_weight, ppp_weight)
			VALUES ($1, $2, $3, $4, $5)
		`, sessionID, p.Name, p.Description, p.RoleWeight, p.PPPWeight)
		if err != nil {
			return 0, fmt.Errorf("insert participant %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit session: %w", err)
	}

	return sessionID, nil
}

// ListSessionKeys returns every session key in creation order
func (s *Store) ListSessionKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_key FROM session ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query session keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan session key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// GetSession looks a session up by its public key
func (s *Store) GetSession(ctx context.Context, key string) (models.Session, error) {
	var session models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_key, topic, description, stake, method
		FROM session
		WHERE session_key = $1
	`, key).Scan(
		&session.ID, &session.Key, &session.Topic,
		&session.Description, &session.Stake, &session.Method,
	)
	if err == sql.ErrNoRows {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("query session: %w", err)
	}

	return session, nil
}

// GetParticipants returns the participants of a session in creation order
func (s *Store) GetParticipants(ctx context.Context, sessionID int64) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, name, description, role_weight, ppp_weight, confirmed
		FROM participant
		WHERE session_id = $1
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Name, &p.Description, &p.RoleWeight, &p.PPPWeight, &p.Confirmed); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// GetVotes returns every vote row of a session in insertion order
func (s *Store) GetVotes(ctx context.Context, sessionID int64) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, voter_id, recipient_id, share, reason
		FROM vote
		WHERE session_id = $1
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.SessionID, &v.VoterID, &v.RecipientID, &v.Share, &v.Reason); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}

// VoteExists reports whether the voter has cast any vote in the session
func (s *Store) VoteExists(ctx context.Context, sessionID, voterID int64) (bool, error) {
	return voteExists(ctx, s.db, sessionID, voterID)
}

func voteExists(ctx context.Context, q queryRower, sessionID, voterID int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE session_id = $1 AND voter_id = $2
		)
	`, sessionID, voterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check vote: %w", err)
	}
	return exists, nil
}

// SubmitVote records one voter's full set of shares atomically.
// The existence check runs inside the transaction, and the unique index on
// (session_id, voter_id, recipient_id) rejects a concurrent duplicate; both
// surface as ErrAlreadyVoted.
func (s *Store) SubmitVote(ctx context.Context, sessionID, voterID int64, shares []models.ShareEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := voteExists(ctx, tx, sessionID, voterID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyVoted
	}

	for _, share := range shares {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote (session_id, voter_id, recipient_id, share, reason)
			VALUES ($1, $2, $3, $4, $5)
		`, sessionID, voterID, share.ID, share.Share, share.Reason)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyVoted
			}
			return fmt.Errorf("insert vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		return fmt.Errorf("commit vote: %w", err)
	}

	return nil
}

// UpdateParticipant writes the mutable fields (description, confirmed)
func (s *Store) UpdateParticipant(ctx context.Context, p models.Participant) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE participant
		SET description = $1, confirmed = $2
		WHERE id = $3 AND session_id = $4
	`, p.Description, p.Confirmed, p.ID, p.SessionID)
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	if n == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

// DeleteSession removes a session; participants and votes go with it
// through ON DELETE CASCADE.
func (s *Store) DeleteSession(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE session_key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// isUniqueViolation recognises duplicate-key errors from either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		// Extended result codes may be off; fall back to the message
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}

	return false
}
