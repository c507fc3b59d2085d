// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms),
tagged with a per-request uuid.

# Authentication Guard

RequireAuth decodes the session cookie, runs it through
state.AuthenticateRequest, and puts the identity in the request context:

	mux.HandleFunc("POST /polls/{id}/votes",
		middleware.WithLogging(middleware.RequireAuth(st, handler)))

Handlers read the identity back with IdentityFrom(r.Context()).
RequireRole adds a role check on top (403 on mismatch):

	middleware.RequireRole(st, auth.RoleAdmin, handler)

Failure messages distinguish missing cookie, tampered cookie, invalid
token, and expired session - none of which leaks credential material.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for the remote field in request logs.
*/
package middleware
