// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the stakeshare API server.

Stakeshare splits a fixed stake (a bonus pool, equity, prize money) among a
group of peers. Every participant divides the stake among the others, and
once everyone has voted the ballots are combined into a final allocation.

# Starting the Server

Configuration comes from the environment (a .env file is loaded if present)
and may be overridden by CLI flags:

	ADMIN_TOKEN=secret DATABASE_URL=stakeshare.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-token secret

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_TOKEN (-admin-token): Secret expected in X-Admin-Token

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SCORING_METHOD (-method): default method for new sessions, weighted or mean
  - ALLOWED_ORIGINS (-origins): comma-separated CORS origins (default: *)

# Architecture

  - handlers: HTTP request handlers (sessions, voting, results, participants)
  - router: Route definitions using Go 1.22+ routing
  - allocation: Completion check, pending view and both scoring methods
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Admin token check and session key generation
  - db: Connection, schema and the Store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
