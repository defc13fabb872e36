// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level and completion (status, duration_ms) at
info, or error for 5xx responses.

# Sessions

RequireSession verifies the bearer token issued by the accounts service and
puts the session in the request context:

	protect := middleware.RequireSession(auth.NewSessionVerifier(secret, issuer))
	mux.HandleFunc("GET /clubs/{id}", middleware.WithLogging(protect(h.GetClub)))

Handlers read the caller with auth.UserID(r.Context()).

# Rate Limiting

Vote toggles and ranking saves are throttled per user with a token bucket:

	limiter := middleware.NewKeyedRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()
	limit := middleware.RateLimit(limiter)

The limiter sits inside RequireSession and keys each bucket on the session's
user. Rejected requests get 429 with a Retry-After header.

# CORS

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins)(mux),
	}

An empty origin list accepts any origin without credentials.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.WriteError(w, r, err)

WriteError renders *apperr.Error values with their status, code, reason and
details. Other errors are logged and reported as a bare 500.

Parse and validate request bodies:

	var req models.CreateClubRequest
	if err := middleware.DecodeAndValidate(r, &req, h.validate); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
