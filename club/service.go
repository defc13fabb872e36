// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package club

import (
	"context"
	"strings"
	"time"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/store"
)

// Membership answers who belongs to a club and who administers it.
type Membership interface {
	IsMember(ctx context.Context, clubID, userID string) (bool, error)
	IsAdmin(ctx context.Context, clubID, userID string) (bool, error)
}

// BookResolver maps catalog search results to local book ids.
type BookResolver interface {
	ResolveOrCreateBook(ctx context.Context, result models.BookSearchResult) (string, error)
	GetBook(ctx context.Context, bookID string) (models.Book, error)
}

// Repository is the persistence the service needs. *store.Store implements it.
type Repository interface {
	Membership
	BookResolver

	CreateClub(ctx context.Context, name, description, creatorID string) (models.Club, error)
	GetClub(ctx context.Context, clubID string) (models.Club, error)
	AddMember(ctx context.Context, clubID, userID string, isAdmin bool) (models.Member, error)
	ListMembers(ctx context.Context, clubID string) ([]models.Member, error)

	CreateMeeting(ctx context.Context, m models.Meeting, newTheme *store.NewTheme) (models.Meeting, error)
	GetMeeting(ctx context.Context, meetingID string) (models.Meeting, error)
	ListMeetings(ctx context.Context, clubID string) ([]models.Meeting, error)
	ListFinalizedMeetings(ctx context.Context, clubID string) ([]models.Meeting, error)
	UpcomingMeeting(ctx context.Context, clubID string, now time.Time) (*models.Meeting, error)
	LatestFinalizedMeeting(ctx context.Context, clubID string) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, m models.Meeting, newTheme *store.NewTheme, selectedBookID *string) error
	DeleteMeeting(ctx context.Context, meetingID string) error
	FinalizeMeeting(ctx context.Context, meetingID, bookID, adminUserID string, check func(models.Meeting) error) (models.Meeting, error)

	Nominate(ctx context.Context, n store.Nomination, check func(models.Meeting) error) (models.BookOption, error)
	GetOption(ctx context.Context, optionID string) (models.BookOption, error)
	ListOptionTallies(ctx context.Context, meetingID, userID string) ([]models.OptionTally, error)
	ToggleVote(ctx context.Context, optionID, userID string, check func(models.Meeting) error) (string, error)

	ReplaceRankings(ctx context.Context, userID, clubID string, year int, ranked []models.RankedBook, unread []string) error
	ListRankings(ctx context.Context, clubID string, year int) ([]models.RankingRow, error)
	UserRankings(ctx context.Context, userID, clubID string, year int) (map[string]*int, error)
	YearsWithRankings(ctx context.Context, clubID string) ([]int, error)

	CreateTheme(ctx context.Context, clubID, name, userID string) (models.Theme, error)
	GetTheme(ctx context.Context, themeID string) (models.Theme, error)
	ThemeSummaries(ctx context.Context, clubID, userID string) ([]models.ThemeSummary, error)
	ToggleThemeUpvote(ctx context.Context, themeID, userID string) (string, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for operations that read the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now reads the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// RequireMember returns apperr.ErrNotAMember unless userID belongs to clubID.
func (s *Service) RequireMember(ctx context.Context, clubID, userID string) error {
	ok, err := s.repo.IsMember(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotAMember
	}
	return nil
}

// RequireAdmin returns apperr.ErrNotAMember for outsiders and
// apperr.ErrNotAdmin for members without the admin flag.
func (s *Service) RequireAdmin(ctx context.Context, clubID, userID string) error {
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return err
	}
	ok, err := s.repo.IsAdmin(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotAdmin
	}
	return nil
}

// CreateClub creates a club with userID as its first admin.
func (s *Service) CreateClub(ctx context.Context, req models.CreateClubRequest, userID string) (models.Club, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Club{}, apperr.Validation("club name is required")
	}
	return s.repo.CreateClub(ctx, name, strings.TrimSpace(req.Description), userID)
}

// AddMember adds a user to a club. Admin only.
func (s *Service) AddMember(ctx context.Context, clubID, adminUserID string, req models.AddMemberRequest) (models.Member, error) {
	if err := s.RequireAdmin(ctx, clubID, adminUserID); err != nil {
		return models.Member{}, err
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return models.Member{}, apperr.Validation("user_id is required")
	}
	return s.repo.AddMember(ctx, clubID, userID, req.IsAdmin)
}

// ClubDetails returns the club with its members in join order. Member only.
func (s *Service) ClubDetails(ctx context.Context, clubID, userID string) (models.ClubDetails, error) {
	c, err := s.repo.GetClub(ctx, clubID)
	if err != nil {
		return models.ClubDetails{}, err
	}
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return models.ClubDetails{}, err
	}

	members, err := s.repo.ListMembers(ctx, clubID)
	if err != nil {
		return models.ClubDetails{}, err
	}

	details := models.ClubDetails{Club: c, Members: []models.Member{}}
	for _, m := range members {
		details.Members = append(details.Members, m)
		if m.UserID == userID {
			details.CurrentUserIsAdmin = m.IsAdmin
		}
	}
	return details, nil
}
