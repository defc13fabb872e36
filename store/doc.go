// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the relational persistence layer for clubs, meetings,
nominations, votes, rankings and themes.

	st := store.New(conn, cfg.DatabaseType)

Queries are written once with ? placeholders and rebound to $N when the
dialect is postgres. Identifiers are random UUIDs.

# Atomicity

  - Nominate resolves the book, checks the meeting and inserts the option in
    one transaction.
  - FinalizeMeeting is a compare-and-set on is_finalized.
  - ReplaceRankings deletes and reinserts a ranking snapshot in one
    transaction.
  - ToggleVote and ToggleThemeUpvote delete first and insert when nothing was
    deleted. A unique violation on that insert reports "added".

# Errors

Missing rows come back as apperr NotFound errors. Unique and foreign key
violations from either driver are mapped to the matching apperr kind. Other
failures are wrapped with fmt.Errorf.
*/
package store
