// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/auth"
)

const (
	minYear = 1900
	maxYear = 9999
)

// caller returns the signed-in user. RequireSession guarantees one on every
// route that reaches these handlers; the check covers miswired routes.
func caller(r *http.Request) (string, error) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		return "", apperr.Unauthorized("authentication required")
	}
	return userID, nil
}

// pathYear parses the {year} path value.
func pathYear(r *http.Request) (int, error) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < minYear || year > maxYear {
		return 0, apperr.Validationf("year must be between %d and %d", minYear, maxYear)
	}
	return year, nil
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
