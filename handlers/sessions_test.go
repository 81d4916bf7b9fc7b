// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/stakeshare/auth"
	"github.com/danielhkuo/stakeshare/db"
	"github.com/danielhkuo/stakeshare/models"
	"github.com/danielhkuo/stakeshare/testutil"
)

// setupStore opens a fresh in-memory store that is closed with the test
func setupStore(t *testing.T) *db.Store {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })
	return db.NewStore(conn)
}

func adminHeaders() map[string]string {
	return map[string]string{auth.AdminTokenHeader: testutil.TestAdminToken}
}

func TestCreateSession(t *testing.T) {
	validParticipants := []models.NewParticipant{
		{Name: "Alice", Description: "Built the backend", RoleWeight: 1, PPPWeight: 1},
		{Name: "Bob", RoleWeight: 2, PPPWeight: 0.5},
	}

	tests := []struct {
		name           string
		headers        map[string]string
		requestBody    interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:    "valid weighted session",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic:        "Q3 bonus",
				Description:  "Split the Q3 bonus pool",
				Stake:        1000,
				Participants: validParticipants,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "valid mean session",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic:       "Hackathon prize",
				Description: "Split the prize",
				Stake:       300,
				Method:      models.MethodMean,
				Participants: []models.NewParticipant{
					{Name: "Alice", Description: "Frontend"},
					{Name: "Bob", Description: "Backend"},
				},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "missing admin token",
			headers: nil,
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: 100, Participants: validParticipants,
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    unauthorizedMessage,
		},
		{
			name:    "wrong admin token",
			headers: map[string]string{auth.AdminTokenHeader: "wrong"},
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: 100, Participants: validParticipants,
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    unauthorizedMessage,
		},
		{
			name:           "invalid json",
			headers:        adminHeaders(),
			requestBody:    "not an object",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid JSON",
		},
		{
			name:    "missing topic",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Description: "x", Stake: 100, Participants: validParticipants,
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing required fields",
		},
		{
			name:    "missing participants",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: 100,
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing required fields",
		},
		{
			name:    "zero stake",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Participants: validParticipants,
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing required fields",
		},
		{
			name:    "negative stake",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: -5, Participants: validParticipants,
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "stake must be positive",
		},
		{
			name:    "single participant",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: 100,
				Participants: validParticipants[:1],
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "At least 2 participants are required",
		},
		{
			name:    "unknown method",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: 100, Method: "median",
				Participants: validParticipants,
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "method must be one of: weighted, mean",
		},
		{
			name:    "weighted participant without role weight",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: 100,
				Participants: []models.NewParticipant{
					{Name: "Alice", PPPWeight: 1},
					{Name: "Bob", RoleWeight: 1, PPPWeight: 1},
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Each participant must have a name, a valid role and ppp weight",
		},
		{
			name:    "weighted participant with blank name",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: 100,
				Participants: []models.NewParticipant{
					{Name: "  ", RoleWeight: 1, PPPWeight: 1},
					{Name: "Bob", RoleWeight: 1, PPPWeight: 1},
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Each participant must have a name, a valid role and ppp weight",
		},
		{
			name:    "mean participant without description",
			headers: adminHeaders(),
			requestBody: models.CreateSessionRequest{
				Topic: "Q3 bonus", Description: "x", Stake: 100, Method: models.MethodMean,
				Participants: []models.NewParticipant{
					{Name: "Alice", Description: "Frontend"},
					{Name: "Bob"},
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Each participant must have a name and description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupStore(t)
			handler := NewSessionHandler(store, testutil.GetTestConfig())

			req := testutil.MakeRequest("POST", "/", tt.requestBody, tt.headers)
			w := httptest.NewRecorder()
			handler.CreateSession(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			keys, err := store.ListSessionKeys(context.Background())
			if err != nil {
				t.Fatalf("Failed to list sessions: %v", err)
			}

			if tt.expectedStatus != http.StatusCreated {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if tt.expectedMsg != "" && resp.Message != tt.expectedMsg {
					t.Errorf("Expected message %q, got %q", tt.expectedMsg, resp.Message)
				}
				if len(keys) != 0 {
					t.Errorf("Expected no session to be stored, found %d", len(keys))
				}
				return
			}

			var key string
			testutil.AssertJSON(t, w, &key)
			if key == "" {
				t.Fatal("Expected a session key in the response")
			}
			if len(keys) != 1 || keys[0] != key {
				t.Errorf("Expected stored keys [%s], got %v", key, keys)
			}
		})
	}
}

func TestCreateSession_StoresParticipants(t *testing.T) {
	store := setupStore(t)
	handler := NewSessionHandler(store, testutil.GetTestConfig())

	body := models.CreateSessionRequest{
		Topic:       "Q3 bonus",
		Description: "Split the Q3 bonus pool",
		Stake:       1000,
		Participants: []models.NewParticipant{
			{Name: " Alice ", Description: "Built the backend", RoleWeight: 1.5, PPPWeight: 1},
			{Name: "Bob", RoleWeight: 2, PPPWeight: 0.5},
		},
	}

	req := testutil.MakeRequest("POST", "/", body, adminHeaders())
	w := httptest.NewRecorder()
	handler.CreateSession(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var key string
	testutil.AssertJSON(t, w, &key)

	ctx := context.Background()
	session, err := store.GetSession(ctx, key)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if session.Method != models.MethodWeighted {
		t.Errorf("Expected default method %q, got %q", models.MethodWeighted, session.Method)
	}
	if session.Stake != 1000 {
		t.Errorf("Expected stake 1000, got %v", session.Stake)
	}

	participants, err := store.GetParticipants(ctx, session.ID)
	if err != nil {
		t.Fatalf("Failed to load participants: %v", err)
	}
	if len(participants) != 2 {
		t.Fatalf("Expected 2 participants, got %d", len(participants))
	}

	alice := participants[0]
	if alice.Name != "Alice" {
		t.Errorf("Expected trimmed name 'Alice', got %q", alice.Name)
	}
	if alice.RoleWeight != 1.5 || alice.PPPWeight != 1 {
		t.Errorf("Unexpected weights for Alice: role=%v ppp=%v", alice.RoleWeight, alice.PPPWeight)
	}
	if alice.Confirmed {
		t.Error("New participants should not be confirmed")
	}
	if participants[1].Description != "" {
		t.Errorf("Expected Bob to have no description, got %q", participants[1].Description)
	}
}

func TestCreateSession_MeanUsesUnitWeights(t *testing.T) {
	store := setupStore(t)
	handler := NewSessionHandler(store, testutil.GetTestConfig())

	body := models.CreateSessionRequest{
		Topic:       "Hackathon prize",
		Description: "Split the prize",
		Stake:       300,
		Method:      models.MethodMean,
		Participants: []models.NewParticipant{
			{Name: "Alice", Description: "Frontend", RoleWeight: 4, PPPWeight: 9},
			{Name: "Bob", Description: "Backend"},
		},
	}

	req := testutil.MakeRequest("POST", "/", body, adminHeaders())
	w := httptest.NewRecorder()
	handler.CreateSession(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var key string
	testutil.AssertJSON(t, w, &key)

	session, err := store.GetSession(context.Background(), key)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	participants, _ := store.GetParticipants(context.Background(), session.ID)
	for _, p := range participants {
		if p.RoleWeight != 1 || p.PPPWeight != 1 {
			t.Errorf("Expected unit weights for %s, got role=%v ppp=%v", p.Name, p.RoleWeight, p.PPPWeight)
		}
	}
}

func TestListSessions(t *testing.T) {
	store := setupStore(t)
	handler := NewSessionHandler(store, testutil.GetTestConfig())

	t.Run("empty", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/", nil, adminHeaders())
		w := httptest.NewRecorder()
		handler.ListSessions(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var keys []string
		testutil.AssertJSON(t, w, &keys)
		if keys == nil || len(keys) != 0 {
			t.Errorf("Expected empty JSON array, got %v", keys)
		}
	})

	first, _ := testutil.CreateTestSession(t, store, 100, "Alice", "Bob")
	second, _ := testutil.CreateTestSession(t, store, 100, "Carol", "Dave")

	t.Run("lists every key", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/", nil, adminHeaders())
		w := httptest.NewRecorder()
		handler.ListSessions(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var keys []string
		testutil.AssertJSON(t, w, &keys)
		found := map[string]bool{}
		for _, k := range keys {
			found[k] = true
		}
		if len(keys) != 2 || !found[first.Key] || !found[second.Key] {
			t.Errorf("Expected keys %s and %s, got %v", first.Key, second.Key, keys)
		}
	})

	t.Run("requires admin", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/", nil, nil)
		w := httptest.NewRecorder()
		handler.ListSessions(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestDeleteSession(t *testing.T) {
	store := setupStore(t)
	handler := NewSessionHandler(store, testutil.GetTestConfig())
	ctx := context.Background()

	session, participants := testutil.CreateTestSession(t, store, 100, "Alice", "Bob")
	testutil.SubmitTestVote(t, store, session.ID, participants[0].ID, map[int64]float64{participants[1].ID: 100})

	t.Run("requires admin", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/"+session.Key, nil, nil)
		req.SetPathValue("sessionKey", session.Key)
		w := httptest.NewRecorder()
		handler.DeleteSession(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
		if _, err := store.GetSession(ctx, session.Key); err != nil {
			t.Errorf("Session should survive an unauthorized delete: %v", err)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/missing", nil, adminHeaders())
		req.SetPathValue("sessionKey", "missing")
		w := httptest.NewRecorder()
		handler.DeleteSession(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("deletes session with participants and votes", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/"+session.Key, nil, adminHeaders())
		req.SetPathValue("sessionKey", session.Key)
		w := httptest.NewRecorder()
		handler.DeleteSession(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SuccessResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.Success {
			t.Error("Expected success=true")
		}

		if _, err := store.GetSession(ctx, session.Key); err != db.ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
		}
		remaining, err := store.GetParticipants(ctx, session.ID)
		if err != nil {
			t.Fatalf("Failed to query participants: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("Expected participants to be deleted, found %d", len(remaining))
		}
		votes, _ := store.GetVotes(ctx, session.ID)
		if len(votes) != 0 {
			t.Errorf("Expected votes to be deleted, found %d", len(votes))
		}
	})
}
