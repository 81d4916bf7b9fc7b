// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin-token checks and session key generation.

# Admin Token

A single deployment secret grants admin rights. Requests carry it in the
X-Admin-Token header and it is compared in constant time:

	err := auth.ValidateAdminToken(r.Header.Get(auth.AdminTokenHeader), cfg.AdminToken)

Admin-only routes require the header. Routes where admin access is optional
use IsAdmin, which treats a missing header as an ordinary caller but still
rejects a wrong one:

	admin, err := auth.IsAdmin(token, cfg.AdminToken)

# Session Keys

Session keys are 16 random bytes, base62 encoded (alphanumeric only):

	key, err := auth.GenerateSessionKey()

The key is the only public handle to a session; numeric row IDs of sessions
are never exposed.
*/
package auth
