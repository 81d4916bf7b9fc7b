// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase on the wire (roleWeight, pppWeight) to match
the existing frontend.

# Request Types

  - CreateSessionRequest: topic, description, stake, method, participants
  - NewParticipant: name, description (mean) or roleWeight + pppWeight (weighted)
  - SubmitVoteRequest: participants (one ShareEntry per other participant)
  - ShareEntry: id, share, reason
  - UpdateParticipantRequest: id, optional description and confirmed

# Response Types

  - PendingView: restricted view while voting is incomplete
  - FinalView: computed allocation with reasons and confirmation state
  - SuccessResponse: {"success": true}
  - ErrorResponse: error, message

# Domain Types

  - Session: topic, stake and scoring method behind an opaque key
  - Participant: weights, description, confirmed flag
  - Vote: one share from a voter to a recipient

# Constants

Scoring methods:

	MethodWeighted = "weighted"
	MethodMean     = "mean"
*/
package models
