// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/stakeshare/allocation"
	"github.com/danielhkuo/stakeshare/auth"
	"github.com/danielhkuo/stakeshare/cliparse"
	"github.com/danielhkuo/stakeshare/db"
	"github.com/danielhkuo/stakeshare/middleware"
	"github.com/danielhkuo/stakeshare/models"
)

type SessionHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewSessionHandler(store *db.Store, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: store, cfg: cfg}
}

// CreateSession handles POST /
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminToken) {
		return
	}

	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Topic == "" || req.Description == "" || req.Stake == 0 || req.Participants == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.Stake < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stake must be positive")
		return
	}
	if len(req.Participants) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "At least 2 participants are required")
		return
	}

	method := req.Method
	if method == "" {
		method = h.cfg.ScoringMethod
	}
	if !allocation.ValidMethod(method) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "method must be one of: weighted, mean")
		return
	}

	participants, msg := newParticipants(method, req.Participants)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	key, err := auth.GenerateSessionKey()
	if err != nil {
		slog.Error("failed to generate session key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	_, err = h.store.CreateSession(r.Context(), models.Session{
		Key:         key,
		Topic:       req.Topic,
		Description: req.Description,
		Stake:       req.Stake,
		Method:      method,
	}, participants)
	if err != nil {
		storeFailure(w, "create session", err)
		return
	}

	slog.Info("session created", "session_key", key, "method", method, "participants", len(participants))

	middleware.JSONResponse(w, http.StatusCreated, key)
}

// newParticipants checks the participant list for the session's method.
// Weighted sessions need both weights; mean sessions need a description and
// store unit weights.
func newParticipants(method string, in []models.NewParticipant) ([]models.Participant, string) {
	out := make([]models.Participant, len(in))
	for i, p := range in {
		name := strings.TrimSpace(p.Name)

		switch method {
		case models.MethodWeighted:
			if name == "" || !(p.RoleWeight > 0) || !(p.PPPWeight > 0) {
				return nil, "Each participant must have a name, a valid role and ppp weight"
			}
			out[i] = models.Participant{
				Name:        name,
				Description: p.Description,
				RoleWeight:  p.RoleWeight,
				PPPWeight:   p.PPPWeight,
			}
		case models.MethodMean:
			if name == "" || p.Description == "" {
				return nil, "Each participant must have a name and description"
			}
			out[i] = models.Participant{
				Name:        name,
				Description: p.Description,
				RoleWeight:  1,
				PPPWeight:   1,
			}
		}
	}
	return out, ""
}

// ListSessions handles GET /
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminToken) {
		return
	}

	keys, err := h.store.ListSessionKeys(r.Context())
	if err != nil {
		storeFailure(w, "get sessions", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, keys)
}

// DeleteSession handles DELETE /api/{sessionKey}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminToken) {
		return
	}

	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteSession(r.Context(), key); err != nil {
		storeFailure(w, "delete session", err)
		return
	}

	slog.Info("session deleted", "session_key", key)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
