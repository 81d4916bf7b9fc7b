// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the stakeshare API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - SessionHandler: Session create, list and delete (admin)
  - VotingHandler: Ballot validation and submission
  - ResultsHandler: Pending view or final allocation
  - ParticipantHandler: Descriptions and confirmations

Handlers are created via constructor functions that accept *db.Store and Config:

	sessionHandler := handlers.NewSessionHandler(store, cfg)

# Admin Access

Create, list and delete require the X-Admin-Token header. GET and PATCH on
a session treat the header as optional: absent means a regular participant,
present but wrong is a 401.

# Voting

A ballot is sent by one participant, identified by X-Voter-Id:

	POST /api/{sessionKey} → SubmitVote

ValidateVote rejects the whole ballot on the first rule it breaks. Weighted
sessions additionally need a reason on every share and a description on every
participant. A participant votes once; the store enforces this inside a
transaction and with a unique index.

# Results

GET /api/{sessionKey} returns the pending view until all N×(N−1) vote rows
exist. The admin always receives the computed allocation.

# Errors

Unknown sessions map to 404. Other store failures are reported as 400 with
the failed action in the message, e.g. "Failed to submit vote: ...".
*/
package handlers
