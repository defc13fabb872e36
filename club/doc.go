// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package club implements the book club operations: meetings and their
lifecycle, nominations, votes, year rankings and themes.

	svc := club.NewService(store.New(conn, cfg.DatabaseType))

The Service holds no state of its own. Every call reads what it needs from
the Repository, checks membership through it, and returns typed apperr
errors that the HTTP layer maps to status codes.

# Meeting Lifecycle

The phase of a meeting is derived on every read from its deadlines and
finalized flag (see package lifecycle):

	nominating → voting → finalized

Nominate requires nominating, ToggleVote requires voting, and Finalize is
allowed from either. The phase check for Nominate and Finalize runs inside
the same transaction as the write.

# Votes

ToggleVote flips presence: a second toggle removes the vote the first one
added. Options are displayed by vote count with ties in nomination order
(SortTallies).

# Rankings

SaveYearRankings replaces a member's whole snapshot for a year. Ranks must be
exactly 1..K for the K ranked books; unread books carry no rank.
GlobalRankings runs a Borda count over all snapshots on demand.

# Themes

SuggestTheme rejects a name that fuzzily matches an existing theme
(package fuzzy), reporting the first match.
*/
package club
