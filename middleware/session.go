// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/auth"
)

// RequireSession rejects requests without a valid bearer session and stores
// the verified session in the request context for auth.UserID.
func RequireSession(v *auth.SessionVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r)
			if err != nil {
				WriteError(w, r, apperr.Unauthorized("authentication required"))
				return
			}

			session, err := v.Verify(token)
			if err != nil {
				if !errors.Is(err, auth.ErrInvalidToken) {
					slog.Warn("session verification failed", "error", err)
				}
				WriteError(w, r, apperr.Unauthorized("invalid or expired session"))
				return
			}

			next(w, r.WithContext(auth.WithSession(r.Context(), session)))
		}
	}
}
