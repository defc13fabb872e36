// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/validation"
)

// WriteError maps err onto an HTTP error response. Domain errors keep their
// code, reason and details; anything else is logged and reported as a 500
// without leaking its text.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code == apperr.CodeInternal {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		ErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := appErr.HTTPStatus()
	JSONResponse(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Code:    string(appErr.Code),
		Reason:  appErr.Reason,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// DecodeAndValidate parses the JSON body into v and runs its validate tags.
// Malformed bodies and tag failures both come back as validation errors.
func DecodeAndValidate(r *http.Request, v any, val *validation.Validator) error {
	if err := ParseJSONBody(r, v); err != nil {
		return apperr.Validation("invalid JSON body").WithCause(err)
	}
	return val.Validate(v)
}
