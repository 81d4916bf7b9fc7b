// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/stakeshare/auth"
	"github.com/danielhkuo/stakeshare/cliparse"
	"github.com/danielhkuo/stakeshare/db"
	"github.com/danielhkuo/stakeshare/models"
)

// TestAdminToken is the admin secret used by GetTestConfig
const TestAdminToken = "test-admin-token"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    ":memory:",
		DatabaseType:   cliparse.DatabaseSQLite,
		AdminToken:     TestAdminToken,
		ScoringMethod:  models.MethodWeighted,
		AllowedOrigins: []string{"*"},
	}
}

// CreateTestSession creates a weighted session whose participants all have
// unit weights and a description, and returns it with the stored participants.
func CreateTestSession(t *testing.T, store *db.Store, stake float64, names ...string) (models.Session, []models.Participant) {
	t.Helper()

	participants := make([]models.Participant, len(names))
	for i, name := range names {
		participants[i] = models.Participant{
			Name:        name,
			Description: name + " shipped things",
			RoleWeight:  1,
			PPPWeight:   1,
		}
	}

	return CreateTestSessionWith(t, store, models.Session{
		Topic:       "Test Session",
		Description: "A test session",
		Stake:       stake,
		Method:      models.MethodWeighted,
	}, participants)
}

// CreateTestSessionWith stores the given session and participants.
// A session key is generated when none is set.
func CreateTestSessionWith(t *testing.T, store *db.Store, session models.Session, participants []models.Participant) (models.Session, []models.Participant) {
	t.Helper()
	ctx := context.Background()

	if session.Key == "" {
		key, err := auth.GenerateSessionKey()
		if err != nil {
			t.Fatalf("Failed to generate session key: %v", err)
		}
		session.Key = key
	}

	id, err := store.CreateSession(ctx, session, participants)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	session.ID = id

	stored, err := store.GetParticipants(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load test participants: %v", err)
	}

	return session, stored
}

// SubmitTestVote records a vote directly through the store, bypassing validation
func SubmitTestVote(t *testing.T, store *db.Store, sessionID, voterID int64, shares map[int64]float64) {
	t.Helper()

	entries := make([]models.ShareEntry, 0, len(shares))
	for recipientID, share := range shares {
		entries = append(entries, models.ShareEntry{ID: recipientID, Share: share, Reason: "test reason"})
	}

	if err := store.SubmitVote(context.Background(), sessionID, voterID, entries); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
