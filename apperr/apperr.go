// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the machine-readable error kind.
type Code string

const (
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeValidation   Code = "VALIDATION"
	CodeInternal     Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error returned by the core operations.
//
// Reason narrows a Code to a specific failure mode (for example
// "already_finalized" within CONFLICT) so callers can tell them apart.
type Error struct {
	Code    Code
	Reason  string
	Message string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code. When the target carries a Reason
// the reasons must match as well, so errors.Is(err, ErrConflict) holds for
// every conflict while errors.Is(err, ErrAlreadyFinalized) only holds for
// that one.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if e.Code != t.Code {
		return false
	}
	return t.Reason == "" || e.Reason == t.Reason
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithMessage returns a copy with a different message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Reason: e.Reason, Message: msg, Details: e.Details, cause: e.cause}
}

// WithDetails returns a copy carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Reason: e.Reason, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Reason: e.Reason, Message: e.Message, Details: e.Details, cause: err}
}

// Generic sentinels, one per kind.
var (
	ErrUnauthorized = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrConflict     = &Error{Code: CodeConflict, Message: "conflict"}
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal     = &Error{Code: CodeInternal, Message: "internal error"}
)

// Specific failure modes of the meeting, vote and ranking operations.
var (
	ErrNotAMember          = &Error{Code: CodeForbidden, Reason: "not_a_member", Message: "you must be a member of this book club"}
	ErrNotAdmin            = &Error{Code: CodeForbidden, Reason: "not_admin", Message: "only admins can do this"}
	ErrNominationsClosed   = &Error{Code: CodeConflict, Reason: "nominations_closed", Message: "nominations are closed for this meeting"}
	ErrVotingClosed        = &Error{Code: CodeConflict, Reason: "voting_closed", Message: "voting is not open for this meeting"}
	ErrDuplicateNomination = &Error{Code: CodeConflict, Reason: "duplicate_nomination", Message: "this book has already been nominated for this meeting"}
	ErrAlreadyFinalized    = &Error{Code: CodeConflict, Reason: "already_finalized", Message: "meeting already finalized"}
	ErrInvalidRanking      = &Error{Code: CodeConflict, Reason: "invalid_ranking", Message: "ranks must form a permutation of 1..N"}
	ErrDuplicateTheme      = &Error{Code: CodeConflict, Reason: "duplicate_theme", Message: "a similar theme already exists"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Conflictf creates a conflict error with a formatted message.
func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Wrap wraps err with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// CodeOf returns the Code carried by err, or CodeInternal when err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
