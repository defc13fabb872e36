package models

import "time"

// Vote toggle outcomes
const (
	VoteAdded   = "added"
	VoteRemoved = "removed"
)

// Book sources
const (
	SourceGoogleBooks = "google_books"
	SourceOpenLibrary = "open_library"
)

// Domain types

type Club struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Member struct {
	ClubID   string    `json:"club_id"`
	UserID   string    `json:"user_id"`
	IsAdmin  bool      `json:"is_admin"`
	JoinedAt time.Time `json:"joined_at"`
}

type Book struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	CoverURL       *string `json:"cover_url,omitempty"`
	Description    *string `json:"description,omitempty"`
	ISBN           *string `json:"isbn,omitempty"`
	PublishedYear  *int    `json:"published_year,omitempty"`
	PageCount      *int    `json:"page_count,omitempty"`
	ExternalSource string  `json:"external_source"`
	ExternalID     string  `json:"external_id"`
}

// BookSearchResult is what a catalog lookup returns before the book exists locally.
type BookSearchResult struct {
	ExternalID     string  `json:"external_id" validate:"required"`
	ExternalSource string  `json:"external_source" validate:"required,oneof=google_books open_library"`
	Title          string  `json:"title" validate:"required"`
	Author         string  `json:"author"`
	CoverURL       *string `json:"cover_url,omitempty"`
	Description    *string `json:"description,omitempty"`
	ISBN           *string `json:"isbn,omitempty"`
	PublishedYear  *int    `json:"published_year,omitempty"`
	PageCount      *int    `json:"page_count,omitempty"`
}

type ThemeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Meeting as stored. SelectedBookID is set iff IsFinalized.
type Meeting struct {
	ID                 string     `json:"id"`
	ClubID             string     `json:"club_id"`
	MeetingDate        time.Time  `json:"meeting_date"`
	NominationDeadline *time.Time `json:"nomination_deadline,omitempty"`
	VotingDeadline     *time.Time `json:"voting_deadline,omitempty"`
	Theme              *ThemeRef  `json:"theme,omitempty"`
	Details            *string    `json:"details,omitempty"`
	IsFinalized        bool       `json:"is_finalized"`
	SelectedBookID     *string    `json:"selected_book_id,omitempty"`
	FinalizedAt        *time.Time `json:"finalized_at,omitempty"`
	FinalizedBy        *string    `json:"finalized_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type BookOption struct {
	ID         string    `json:"id"`
	MeetingID  string    `json:"meeting_id"`
	BookID     string    `json:"book_id"`
	ProposedBy string    `json:"proposed_by"`
	CreatedAt  time.Time `json:"created_at"`
	// Seq is the insertion order within the store; used as the display tie-break.
	Seq int64 `json:"-"`
}

// OptionTally is a book option with its current votes.
type OptionTally struct {
	Option       BookOption `json:"option"`
	Book         Book       `json:"book"`
	VoteCount    int        `json:"vote_count"`
	UserHasVoted bool       `json:"user_has_voted"`
}

type Theme struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"club_id"`
	Name        string    `json:"name"`
	SubmittedBy string    `json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type ThemeSummary struct {
	Theme          Theme `json:"theme"`
	UpvoteCount    int   `json:"upvote_count"`
	UserHasUpvoted bool  `json:"user_has_upvoted"`
	TimesUsed      int   `json:"times_used"`
}

// RankingRow is one stored personal ranking row. Rank nil means "not read".
type RankingRow struct {
	UserID string `json:"user_id"`
	BookID string `json:"book_id"`
	Rank   *int   `json:"rank"`
}

type RankedBook struct {
	BookID string `json:"book_id" validate:"required"`
	Rank   int    `json:"rank" validate:"gte=1"`
}

// GlobalRanking is one line of the Borda aggregate for a club year.
type GlobalRanking struct {
	BookID           string  `json:"book_id"`
	TotalPoints      int     `json:"total_points"`
	NumberOfRankings int     `json:"number_of_rankings"`
	AverageRank      float64 `json:"average_rank"`
}

// YearBook is a book read by the club in a year with the caller's rank.
type YearBook struct {
	Book        Book      `json:"book"`
	MeetingDate time.Time `json:"meeting_date"`
	Rank        *int      `json:"rank"`
}

// Request types

type CreateClubRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type AddMemberRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	IsAdmin bool   `json:"is_admin"`
}

type MeetingInput struct {
	MeetingDate        time.Time  `json:"meeting_date" validate:"required"`
	NominationDeadline *time.Time `json:"nomination_deadline,omitempty"`
	VotingDeadline     *time.Time `json:"voting_deadline,omitempty"`
	ThemeName          *string    `json:"theme_name,omitempty" validate:"omitempty,max=100"`
	Details            *string    `json:"details,omitempty" validate:"omitempty,max=2000"`
}

type LogPastMeetingRequest struct {
	MeetingDate time.Time `json:"meeting_date" validate:"required"`
	BookID      string    `json:"book_id" validate:"required"`
	ThemeName   *string   `json:"theme_name,omitempty" validate:"omitempty,max=100"`
	Details     *string   `json:"details,omitempty" validate:"omitempty,max=2000"`
}

type UpdateMeetingRequest struct {
	MeetingInput
	// SelectedBookID changes the winner of an already finalized meeting.
	SelectedBookID *string `json:"selected_book_id,omitempty"`
}

// NominateRequest carries either a known book id or a catalog search result.
type NominateRequest struct {
	BookID string            `json:"book_id" validate:"required_without=Book"`
	Book   *BookSearchResult `json:"book,omitempty" validate:"required_without=BookID"`
}

type FinalizeRequest struct {
	SelectedBookID string `json:"selected_book_id" validate:"required"`
}

type SaveRankingsRequest struct {
	Ranked []RankedBook `json:"ranked" validate:"dive"`
	Unread []string     `json:"unread" validate:"dive,required"`
}

type SuggestThemeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type FuzzyMatchRequest struct {
	Name     string   `json:"name" validate:"required"`
	Other    string   `json:"other,omitempty"`
	Existing []string `json:"existing,omitempty"`
}

// Response types

type CreatedResponse struct {
	ID string `json:"id"`
}

type NominateResponse struct {
	BookOptionID string `json:"book_option_id"`
	BookID       string `json:"book_id"`
}

type ToggleResponse struct {
	Action string `json:"action"`
}

type PhaseResponse struct {
	MeetingID string `json:"meeting_id"`
	Phase     string `json:"phase"`
}

type MeetingDetails struct {
	Meeting            Meeting       `json:"meeting"`
	Phase              string        `json:"phase"`
	PhaseEnds          *time.Time    `json:"phase_ends,omitempty"`
	PhaseEndsIn        string        `json:"phase_ends_in,omitempty"`
	SelectedBook       *Book         `json:"selected_book,omitempty"`
	Options            []OptionTally `json:"options"`
	CurrentUserIsAdmin bool          `json:"current_user_is_admin"`
}

type ClubDetails struct {
	Club
	Members            []Member `json:"members"`
	CurrentUserIsAdmin bool     `json:"current_user_is_admin"`
}

type ClubState struct {
	State        string   `json:"state"`
	Meeting      *Meeting `json:"meeting,omitempty"`
	PreviousPick *Book    `json:"previous_pick,omitempty"`
}

type FuzzyMatchResponse struct {
	IsMatch *bool   `json:"is_match,omitempty"`
	Match   *string `json:"match"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}
