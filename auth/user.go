// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
)

// User role constants
const (
	RoleAdmin   = "admin"
	RoleGeneral = "general"
)

// saltLength is the size in bytes of the per-user password salt
const saltLength = 16

// User is a stored credential record. The plaintext password is hashed at
// creation time and never retained.
type User struct {
	Role         string `json:"role"`
	PasswordSalt []byte `json:"password_salt"`
	PasswordHash []byte `json:"password_hash"`
}

// ValidRole reports whether role is one of the known role constants
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleGeneral:
		return true
	}
	return false
}

// NewUser creates a credential record with a fresh random salt and a
// SHA-512 hash of salt || password.
func NewUser(role, password string) (User, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return User{}, fmt.Errorf("failed to generate password salt: %w", err)
	}

	return User{
		Role:         role,
		PasswordSalt: salt,
		PasswordHash: saltedHash(salt, password),
	}, nil
}

// Verify recomputes the salted hash and compares it against the stored
// hash in constant time. A failed verification is simply false - no error
// distinguishes the reason.
func (u User) Verify(password string) bool {
	return hmac.Equal(u.PasswordHash, saltedHash(u.PasswordSalt, password))
}

func saltedHash(salt []byte, password string) []byte {
	h := sha512.New()
	h.Write(salt)
	h.Write([]byte(password))
	return h.Sum(nil)
}

// GeneratePassword creates a random one-time password for bootstrap users
// 18 bytes = 24 base64 characters
func GeneratePassword() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
