// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP API on top of package club.

Every handler expects RequireSession to have run first and reads the caller
with auth.UserID. Request bodies are decoded and tag-validated with
middleware.DecodeAndValidate; all failures go through middleware.WriteError,
so a domain error keeps its status and reason:

	403 {"code":"FORBIDDEN","reason":"not_admin", ...}
	409 {"code":"CONFLICT","reason":"already_finalized", ...}

# Clubs

	POST /clubs                          CreateClub (creator becomes admin)
	GET  /clubs/{id}                     GetClub (club with members)
	POST /clubs/{id}/members             AddMember (admin)
	GET  /clubs/{id}/state               ClubState

# Meetings

	GET    /clubs/{id}/meetings          ListMeetings
	POST   /clubs/{id}/meetings          CreateMeeting (admin)
	POST   /clubs/{id}/meetings/past     LogPastMeeting (admin)
	GET    /meetings/{id}                GetMeeting (details, phase, tallies)
	GET    /meetings/{id}/phase          GetPhase
	PATCH  /meetings/{id}                UpdateMeeting (admin)
	DELETE /meetings/{id}                DeleteMeeting (admin)

# Nominations and Votes

	POST /meetings/{id}/nominations      Nominate (book_id or catalog "book")
	POST /options/{id}/vote              ToggleVote, returns {"action":"added"|"removed"}
	POST /meetings/{id}/finalize         Finalize (admin)

Phase is derived from the meeting's deadlines on every request; nominating
accepts nominations, voting accepts votes, and finalize works from either.

# Rankings

	GET /clubs/{id}/rankings/years            RankingYears
	GET /clubs/{id}/rankings/{year}           YearBooks with the caller's ranks
	PUT /clubs/{id}/rankings/{year}           SaveYearRankings (replaces the snapshot)
	GET /clubs/{id}/global-rankings           GlobalRankingYears
	GET /clubs/{id}/global-rankings/{year}    GlobalRankings (Borda count)

# Themes

	GET  /clubs/{id}/themes              ListThemes
	GET  /clubs/{id}/themes/suggestions  Suggestions
	POST /clubs/{id}/themes              SuggestTheme (rejects near duplicates)
	POST /themes/{id}/upvote             ToggleUpvote
	POST /themes/match                   Match (fuzzy name comparison)
*/
package handlers
