// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the stakeshare API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health

Session collection (admin, requires X-Admin-Token). Each route is also
served under /api:

	POST /  - Create session, returns the session key
	GET  /  - List session keys

Single session:

	GET    /api/{sessionKey} - Pending view or final allocation
	POST   /api/{sessionKey} - Submit a ballot (X-Voter-Id)
	PATCH  /api/{sessionKey} - Set a description or confirmation
	DELETE /api/{sessionKey} - Delete session (admin)

GET and PATCH accept an optional X-Admin-Token. A wrong token is rejected
rather than treated as anonymous.

# Handler Initialization

All handlers share the store and configuration:

	sessionHandler := handlers.NewSessionHandler(store, cfg)
	votingHandler := handlers.NewVotingHandler(store, cfg)

CORS is applied around the whole mux in main, not per route.
*/
package router
