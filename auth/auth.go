// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "poll_session"

// SigningKeyLength is the size in bytes of the cookie signing key.
const SigningKeyLength = 32

var ErrTamperedCookie = errors.New("cookie signature invalid or tampered")

// GenerateToken creates a random session token
// 24 bytes = 192 bits of entropy, URL-safe base64 without padding
func GenerateToken() (string, error) {
	b := make([]byte, 24)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewSigningKey creates a fresh random cookie signing key.
// Generated once at bootstrap and persisted with the state snapshot so
// cookies stay verifiable across restarts.
func NewSigningKey() ([]byte, error) {
	key := make([]byte, SigningKeyLength)
	_, err := rand.Read(key)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	return key, nil
}

// SignToken produces the cookie value for a session token: the token
// followed by an HMAC-SHA256 tag over it, so any bit-flip is detectable
func SignToken(token string, key []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(token))
	tag := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return token + "." + tag
}

// VerifyCookieValue checks the integrity tag on a cookie value and returns
// the enclosed session token. This runs before any session lookup - an
// unverifiable cookie never reaches the session store.
func VerifyCookieValue(value string, key []byte) (string, error) {
	token, tag, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", ErrTamperedCookie
	}

	h := hmac.New(sha256.New, key)
	h.Write([]byte(token))
	expected := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(tag), []byte(expected)) {
		return "", ErrTamperedCookie
	}
	return token, nil
}
