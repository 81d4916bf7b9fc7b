// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Postgres connection string or SQLite file name (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminToken: Shared admin secret (required)
  - ScoringMethod: Default scoring method for new sessions (default: weighted)
  - AllowedOrigins: CORS origins (default: *)

# Sources

The environment is parsed first, then CLI flags override it:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ADMIN_TOKEN     → -admin-token
	SCORING_METHOD  → -method
	ALLOWED_ORIGINS → -origins

main loads a .env file into the environment before calling ParseFlags.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - ADMIN_TOKEN is missing
  - SCORING_METHOD is not weighted or mean
  - the port is out of range
*/
package cliparse
