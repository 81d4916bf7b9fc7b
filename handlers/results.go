// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stakeshare/allocation"
	"github.com/danielhkuo/stakeshare/cliparse"
	"github.com/danielhkuo/stakeshare/db"
	"github.com/danielhkuo/stakeshare/middleware"
	"github.com/danielhkuo/stakeshare/models"
)

type ResultsHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewResultsHandler(store *db.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: store, cfg: cfg}
}

// GetSession handles GET /api/{sessionKey}
// Returns the pending view until every participant has voted. The admin
// always gets the computed allocation, even on a partial vote set.
func (h *ResultsHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	admin, ok := optionalAdmin(w, r, h.cfg.AdminToken)
	if !ok {
		return
	}

	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	session, err := h.store.GetSession(ctx, key)
	if err != nil {
		storeFailure(w, "get session data", err)
		return
	}

	participants, err := h.store.GetParticipants(ctx, session.ID)
	if err != nil {
		storeFailure(w, "get session data", err)
		return
	}

	votes, err := h.store.GetVotes(ctx, session.ID)
	if err != nil {
		storeFailure(w, "get session data", err)
		return
	}

	complete := allocation.Complete(len(participants), len(votes))

	if !complete && !admin {
		middleware.JSONResponse(w, http.StatusOK, models.PendingView{
			Topic:        session.Topic,
			Description:  session.Description,
			Stake:        session.Stake,
			Method:       session.Method,
			Complete:     false,
			Participants: allocation.Pending(participants, votes, admin),
		})
		return
	}

	allocations, err := allocation.Compute(session.Method, participants, votes, session.Stake)
	if err != nil {
		slog.Error("failed to compute allocation", "session_key", key, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute allocation")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FinalView{
		Topic:        session.Topic,
		Description:  session.Description,
		Stake:        session.Stake,
		Method:       session.Method,
		Complete:     complete,
		Confirmed:    allocation.AllConfirmed(participants),
		Unallocated:  allocation.Unallocated(session.Stake, allocations),
		Participants: allocations,
	})
}
