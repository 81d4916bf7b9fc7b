// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Header names carried by requests
const (
	AdminTokenHeader = "X-Admin-Token"
	VoterIDHeader    = "X-Voter-Id"
)

var (
	ErrMissingAdminToken = errors.New("missing admin token")
	ErrInvalidAdminToken = errors.New("invalid admin token")
)

// sessionKeyBytes gives 128 bits of entropy per key
const sessionKeyBytes = 16

// ValidateAdminToken checks the supplied token against the configured secret
// in constant time. An empty token is reported separately so callers can
// treat admin access as optional.
func ValidateAdminToken(token, secret string) error {
	if token == "" {
		return ErrMissingAdminToken
	}
	if secret == "" || !hmac.Equal([]byte(token), []byte(secret)) {
		return ErrInvalidAdminToken
	}
	return nil
}

// IsAdmin resolves an optional admin header.
// No header: (false, nil). Matching header: (true, nil). Anything else errors.
func IsAdmin(token, secret string) (bool, error) {
	err := ValidateAdminToken(token, secret)
	if errors.Is(err, ErrMissingAdminToken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GenerateSessionKey creates the opaque public identifier of a session.
// Random bytes are base62 encoded so the key is safe in a URL path.
func GenerateSessionKey() (string, error) {
	b := make([]byte, sessionKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session key: %w", err)
	}
	return base62Encode(b), nil
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	num := new(big.Int).SetBytes(data)
	if num.Sign() == 0 {
		return "0"
	}

	base := big.NewInt(62)
	mod := new(big.Int)
	result := make([]byte, 0, 22) // 16 bytes -> at most 22 base62 digits
	for num.Sign() > 0 {
		num.DivMod(num, base, mod)
		result = append(result, base62Chars[mod.Int64()])
	}

	// Reverse the string
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
