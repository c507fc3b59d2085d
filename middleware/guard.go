// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielhkuo/poll-server/auth"
	"github.com/danielhkuo/poll-server/session"
	"github.com/danielhkuo/poll-server/state"
)

type contextKey struct{}

var identityKey contextKey

// IdentityFrom returns the authenticated identity stored by RequireAuth.
func IdentityFrom(ctx context.Context) (state.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(state.Identity)
	return identity, ok
}

// RequireAuth authenticates the session cookie before calling next, and
// stores the resulting identity in the request context. Expired and
// invalid tokens get distinct messages; neither reveals secret material.
func RequireAuth(st *state.State, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cookieValue string
		if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
			cookieValue = cookie.Value
		}

		identity, err := st.AuthenticateRequest(cookieValue)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, authFailureMessage(err))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole authenticates and then checks the identity's role.
func RequireRole(st *state.State, role string, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(st, func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok || identity.Role != role {
			ErrorResponse(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		next(w, r)
	})
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, state.ErrNoCookie):
		return "you are not signed in"
	case errors.Is(err, auth.ErrTamperedCookie):
		return "could not validate authentication cookie"
	case errors.Is(err, session.ErrExpired):
		return "session expired"
	case errors.Is(err, session.ErrInvalidToken):
		return "not a valid session cookie"
	}
	return "authentication failed"
}
