// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Scoring method constants
const (
	MethodWeighted = "weighted"
	MethodMean     = "mean"
)

// SubmittedMarker replaces a description in the pending view until every
// participant has written one.
const SubmittedMarker = "Submitted"

// Request types

type NewParticipant struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	RoleWeight  float64 `json:"roleWeight,omitempty"`
	PPPWeight   float64 `json:"pppWeight,omitempty"`
}

type CreateSessionRequest struct {
	Topic        string           `json:"topic"`
	Description  string           `json:"description"`
	Stake        float64          `json:"stake"`
	Method       string           `json:"method,omitempty"`
	Participants []NewParticipant `json:"participants"`
}

// One share per recipient. Reason is mandatory for weighted sessions.
type ShareEntry struct {
	ID     int64   `json:"id"`
	Share  float64 `json:"share"`
	Reason string  `json:"reason"`
}

type SubmitVoteRequest struct {
	Participants []ShareEntry `json:"participants"`
}

// Nil fields are left untouched.
type UpdateParticipantRequest struct {
	ID          int64   `json:"id"`
	Description *string `json:"description,omitempty"`
	Confirmed   *bool   `json:"confirmed,omitempty"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

type PendingParticipant struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Voted       bool    `json:"voted"`
}

type PendingView struct {
	Topic        string               `json:"topic"`
	Description  string               `json:"description"`
	Stake        float64              `json:"stake"`
	Method       string               `json:"method"`
	Complete     bool                 `json:"complete"`
	Participants []PendingParticipant `json:"participants"`
}

type Allocation struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Share       float64  `json:"share"`
	Reasons     []string `json:"reasons"`
}

type FinalView struct {
	Topic        string       `json:"topic"`
	Description  string       `json:"description"`
	Stake        float64      `json:"stake"`
	Method       string       `json:"method"`
	Complete     bool         `json:"complete"`
	Confirmed    bool         `json:"confirmed"`
	Unallocated  float64      `json:"unallocated"`
	Participants []Allocation `json:"participants"`
}

// Domain types

type Session struct {
	ID          int64   `json:"id"`
	Key         string  `json:"key"`
	Topic       string  `json:"topic"`
	Description string  `json:"description"`
	Stake       float64 `json:"stake"`
	Method      string  `json:"method"`
}

type Participant struct {
	ID          int64   `json:"id"`
	SessionID   int64   `json:"session_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	RoleWeight  float64 `json:"roleWeight"`
	PPPWeight   float64 `json:"pppWeight"`
	Confirmed   bool    `json:"confirmed"`
}

type Vote struct {
	ID          int64   `json:"id"`
	SessionID   int64   `json:"session_id"`
	VoterID     int64   `json:"voter_id"`
	RecipientID int64   `json:"recipient_id"`
	Share       float64 `json:"share"`
	Reason      string  `json:"reason"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
