// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/stakeshare/auth"
	"github.com/danielhkuo/stakeshare/cliparse"
	"github.com/danielhkuo/stakeshare/db"
	"github.com/danielhkuo/stakeshare/middleware"
	"github.com/danielhkuo/stakeshare/models"
)

// Vote validation failures, returned to the caller as 400 messages
var (
	ErrMissingReason      = errors.New("one or more participants in the vote do not have a share reason")
	ErrShareCount         = errors.New("invalid number of share participants")
	ErrVoterNotFound      = errors.New("voter is not a participant in this session")
	ErrSelfVote           = errors.New("you cannot vote for yourself")
	ErrMissingDescription = errors.New("all participants must have a description before voting")
	ErrNegativeShare      = errors.New("shares cannot be negative")
	ErrShareTotal         = errors.New("total shares must equal session stake")
	ErrUnknownRecipient   = errors.New("one or more participants in the shares do not exist")
	ErrDuplicateRecipient = errors.New("each participant may receive only one share")
)

type VotingHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewVotingHandler(store *db.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: store, cfg: cfg}
}

// SubmitVote handles POST /api/{sessionKey}
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	key, ok := sessionKey(w, r)
	if !ok {
		return
	}

	voterID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(auth.VoterIDHeader)), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid voter ID")
		return
	}

	// Parse request
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx := r.Context()
	session, err := h.store.GetSession(ctx, key)
	if err != nil {
		storeFailure(w, "submit vote", err)
		return
	}

	participants, err := h.store.GetParticipants(ctx, session.ID)
	if err != nil {
		storeFailure(w, "submit vote", err)
		return
	}

	if err := ValidateVote(session, participants, voterID, req.Participants); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Existence check and insert share one transaction
	err = h.store.SubmitVote(ctx, session.ID, voterID, req.Participants)
	if errors.Is(err, db.ErrAlreadyVoted) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted in this session")
		return
	}
	if err != nil {
		storeFailure(w, "submit vote", err)
		return
	}

	slog.Info("vote submitted", "session_key", key, "voter_id", voterID, "shares", len(req.Participants))

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ValidateVote applies every rule a ballot must pass before it is stored.
// The whole ballot is rejected on the first violation.
func ValidateVote(session models.Session, participants []models.Participant, voterID int64, shares []models.ShareEntry) error {
	weighted := session.Method == models.MethodWeighted

	if weighted {
		for _, s := range shares {
			if strings.TrimSpace(s.Reason) == "" {
				return ErrMissingReason
			}
		}
	}

	if len(shares) != len(participants)-1 {
		return ErrShareCount
	}

	known := make(map[int64]bool, len(participants))
	for _, p := range participants {
		known[p.ID] = true
	}
	if !known[voterID] {
		return ErrVoterNotFound
	}

	for _, s := range shares {
		if s.ID == voterID {
			return ErrSelfVote
		}
	}

	if weighted {
		for _, p := range participants {
			if p.Description == "" {
				return ErrMissingDescription
			}
		}
	}

	var total float64
	for _, s := range shares {
		if s.Share < 0 {
			return ErrNegativeShare
		}
		total += s.Share
	}
	if total != session.Stake {
		return ErrShareTotal
	}

	seen := make(map[int64]bool, len(shares))
	for _, s := range shares {
		if !known[s.ID] {
			return ErrUnknownRecipient
		}
		if seen[s.ID] {
			return ErrDuplicateRecipient
		}
		seen[s.ID] = true
	}

	return nil
}
