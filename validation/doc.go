// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validation checks decoded request bodies against their struct tags.

Request types in package models carry `validate` tags understood by
go-playground/validator. Validate runs those checks and, on failure, returns
an *apperr.Error with code VALIDATION whose Details map each failing JSON
field path to a short message:

	{"name": "is required", "ranked[0].rank": "must be greater than or equal to 1"}

Cross-field rules that tags cannot express (rank permutations, phase
windows) live in package club.
*/
package validation
