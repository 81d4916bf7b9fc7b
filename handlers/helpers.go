// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stakeshare/auth"
	"github.com/danielhkuo/stakeshare/db"
	"github.com/danielhkuo/stakeshare/middleware"
)

const unauthorizedMessage = "Unauthorized - Invalid admin token"

// requireAdmin rejects the request with 401 unless it carries the admin token
func requireAdmin(w http.ResponseWriter, r *http.Request, secret string) bool {
	if err := auth.ValidateAdminToken(r.Header.Get(auth.AdminTokenHeader), secret); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, unauthorizedMessage)
		return false
	}
	return true
}

// optionalAdmin resolves an optional admin header. ok is false when a wrong
// token was supplied and the 401 has already been written.
func optionalAdmin(w http.ResponseWriter, r *http.Request, secret string) (admin, ok bool) {
	admin, err := auth.IsAdmin(r.Header.Get(auth.AdminTokenHeader), secret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, unauthorizedMessage)
		return false, false
	}
	return admin, true
}

// sessionKey reads the {sessionKey} path value, writing a 400 when it is empty
func sessionKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := r.PathValue("sessionKey")
	if key == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Session key is required")
		return "", false
	}
	return key, true
}

// storeFailure writes the response for an error returned by the store.
// Unknown sessions become 404; everything else is a generic 400 naming the
// failed action.
func storeFailure(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, db.ErrSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	slog.Error("store operation failed", "action", action, "error", err)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to "+action+": "+err.Error())
}
