// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request and response types.

# Domain Types

  - Club, Member: group and membership rows
  - Book, BookSearchResult: local book identity and catalog lookups
  - Meeting: schedule, deadlines, finalization (SelectedBookID set iff IsFinalized)
  - BookOption, OptionTally: nominated books and their vote counts
  - Theme, ThemeSummary: suggested themes with upvotes
  - RankingRow, RankedBook, GlobalRanking, YearBook: personal and aggregate rankings

Optional relations loaded by joins (a meeting's theme, a selected book) are
pointer fields, nil when absent.

# Request Types

Request types carry validate tags checked by package validation:

  - CreateClubRequest, AddMemberRequest
  - MeetingInput, LogPastMeetingRequest, UpdateMeetingRequest
  - NominateRequest (book_id or book), FinalizeRequest
  - SaveRankingsRequest (ranked + unread)
  - SuggestThemeRequest, FuzzyMatchRequest

# Constants

Vote toggle outcomes:

	VoteAdded   = "added"
	VoteRemoved = "removed"
*/
package models
