// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the typed errors returned by the book club core.

Every failure is a value, never a panic. Each error carries one of six
kinds:

	CodeUnauthorized  no session
	CodeForbidden     not a member, or not an admin for an admin-only action
	CodeNotFound      meeting, option, theme or club absent
	CodeConflict      duplicate nomination, already finalized, bad ranking
	CodeValidation    missing field, malformed deadline ordering
	CodeInternal      store failure

Specific failure modes are sentinels narrowed by Reason:

	if errors.Is(err, apperr.ErrAlreadyFinalized) {
		// second finalize lost the race
	}

errors.Is(err, apperr.ErrConflict) matches every conflict regardless of reason.
The presentation layer maps Code to an HTTP status with HTTPStatus.
*/
package apperr
