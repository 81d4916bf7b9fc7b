// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stakeshare/cliparse"
	"github.com/danielhkuo/stakeshare/db"
	"github.com/danielhkuo/stakeshare/middleware"
	"github.com/danielhkuo/stakeshare/models"
)

type ParticipantHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewParticipantHandler(store *db.Store, cfg cliparse.Config) *ParticipantHandler {
	return &ParticipantHandler{store: store, cfg: cfg}
}

// UpdateParticipant handles PATCH /api/{sessionKey}
//
// Anyone may write a participant's first description and confirm a
// participant. Rewriting a description and revoking a confirmation are
// admin-only.
func (h *ParticipantHandler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	admin, ok := optionalAdmin(w, r, h.cfg.AdminToken)
	if !ok {
		return
	}

	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	var req models.UpdateParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Participant ID required")
		return
	}

	ctx := r.Context()
	session, err := h.store.GetSession(ctx, key)
	if err != nil {
		storeFailure(w, "update participant", err)
		return
	}

	participants, err := h.store.GetParticipants(ctx, session.ID)
	if err != nil {
		storeFailure(w, "update participant", err)
		return
	}

	var existing *models.Participant
	for i := range participants {
		if participants[i].ID == req.ID {
			existing = &participants[i]
			break
		}
	}
	if existing == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Participant does not exist in this session")
		return
	}

	updated := *existing

	if req.Description != nil {
		if !admin && existing.Description != "" {
			middleware.ErrorResponse(w, http.StatusForbidden, "Description has already been submitted")
			return
		}
		updated.Description = *req.Description
	}

	if req.Confirmed != nil {
		if !admin && !*req.Confirmed {
			middleware.ErrorResponse(w, http.StatusForbidden, "Only the admin can revoke a confirmation")
			return
		}
		updated.Confirmed = *req.Confirmed
	}

	err = h.store.UpdateParticipant(ctx, updated)
	if errors.Is(err, db.ErrParticipantNotFound) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Participant does not exist in this session")
		return
	}
	if err != nil {
		storeFailure(w, "update participant", err)
		return
	}

	slog.Info("participant updated", "session_key", key, "participant_id", updated.ID, "admin", admin)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
