// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential records, token generation, and signed
cookie values.

# Credential Records

Users are stored as a role plus a salted SHA-512 password hash:

	user, err := auth.NewUser(auth.RoleGeneral, password)
	ok := user.Verify(password)

Each record gets a fresh random 16-byte salt, so two users with the same
password store different hashes. Verification uses a constant-time compare.

# Roles

The role set is closed:

	RoleAdmin   = "admin"
	RoleGeneral = "general"

Authorization points check roles explicitly; ValidRole rejects anything
outside the set (for example in a restored snapshot).

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateToken()

Tokens are URL-safe base64 encoded. They are opaque - all meaning lives in
the session store.

# Signed Cookies

Cookie values carry the token plus an HMAC-SHA256 integrity tag computed
with the server's signing key:

	value := auth.SignToken(token, key)
	token, err := auth.VerifyCookieValue(value, key)

VerifyCookieValue fails with ErrTamperedCookie on any modification. The
signing key is generated once at bootstrap (auth.NewSigningKey) and
persisted with the state snapshot.

# Bootstrap Passwords

Random one-time passwords for the bootstrap admin user:

	password, err := auth.GeneratePassword()

24 base64 characters; surfaced once at startup and never stored in
recoverable form.
*/
package auth
