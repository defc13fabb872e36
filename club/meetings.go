// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package club

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/fuzzy"
	"github.com/AdamDeHovitz/readers-choice/lifecycle"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/store"
)

// PhaseOf derives a stored meeting's phase at now.
func PhaseOf(m models.Meeting, now time.Time) lifecycle.Phase {
	return lifecycle.Derive(now, m.NominationDeadline, m.VotingDeadline, m.IsFinalized)
}

// MeetingPhase returns the meeting's current phase for a member of its
// club. Phase is never stored.
func (s *Service) MeetingPhase(ctx context.Context, meetingID, userID string, now time.Time) (lifecycle.Phase, error) {
	m, err := s.MeetingForMember(ctx, meetingID, userID)
	if err != nil {
		return "", err
	}
	return PhaseOf(m, now), nil
}

// MeetingForMember loads a meeting and checks that userID belongs to its club.
func (s *Service) MeetingForMember(ctx context.Context, meetingID, userID string) (models.Meeting, error) {
	m, err := s.repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return models.Meeting{}, err
	}
	if err := s.RequireMember(ctx, m.ClubID, userID); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

func (s *Service) meetingForAdmin(ctx context.Context, meetingID, userID string) (models.Meeting, error) {
	m, err := s.repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return models.Meeting{}, err
	}
	if err := s.RequireAdmin(ctx, m.ClubID, userID); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

// CreateMeeting schedules a new meeting. Admin only.
func (s *Service) CreateMeeting(ctx context.Context, clubID string, input models.MeetingInput, adminUserID string) (models.Meeting, error) {
	if err := s.RequireAdmin(ctx, clubID, adminUserID); err != nil {
		return models.Meeting{}, err
	}
	if err := lifecycle.ValidateSchedule(input.MeetingDate, input.NominationDeadline, input.VotingDeadline); err != nil {
		return models.Meeting{}, err
	}

	theme, newTheme, err := s.themeRef(ctx, clubID, input.ThemeName, adminUserID)
	if err != nil {
		return models.Meeting{}, err
	}

	return s.repo.CreateMeeting(ctx, models.Meeting{
		ClubID:             clubID,
		MeetingDate:        input.MeetingDate,
		NominationDeadline: input.NominationDeadline,
		VotingDeadline:     input.VotingDeadline,
		Theme:              theme,
		Details:            trimmed(input.Details),
	}, newTheme)
}

// LogPastMeeting records a meeting that already happened, finalized on
// creation with its book.
func (s *Service) LogPastMeeting(ctx context.Context, clubID string, req models.LogPastMeetingRequest, adminUserID string) (models.Meeting, error) {
	if err := s.RequireAdmin(ctx, clubID, adminUserID); err != nil {
		return models.Meeting{}, err
	}
	if req.MeetingDate.IsZero() {
		return models.Meeting{}, apperr.Validation("meeting date is required")
	}
	if strings.TrimSpace(req.BookID) == "" {
		return models.Meeting{}, apperr.Validation("book_id is required")
	}
	if _, err := s.repo.GetBook(ctx, req.BookID); err != nil {
		return models.Meeting{}, err
	}

	theme, newTheme, err := s.themeRef(ctx, clubID, req.ThemeName, adminUserID)
	if err != nil {
		return models.Meeting{}, err
	}

	now := s.now().UTC()
	bookID := req.BookID
	return s.repo.CreateMeeting(ctx, models.Meeting{
		ClubID:         clubID,
		MeetingDate:    req.MeetingDate,
		Theme:          theme,
		Details:        trimmed(req.Details),
		IsFinalized:    true,
		SelectedBookID: &bookID,
		FinalizedAt:    &now,
		FinalizedBy:    &adminUserID,
	}, newTheme)
}

// UpdateMeeting edits a meeting's schedule, theme and details. The selected
// book may only be swapped on a meeting that is already finalized.
func (s *Service) UpdateMeeting(ctx context.Context, meetingID string, req models.UpdateMeetingRequest, adminUserID string) (models.Meeting, error) {
	m, err := s.meetingForAdmin(ctx, meetingID, adminUserID)
	if err != nil {
		return models.Meeting{}, err
	}
	if err := lifecycle.ValidateSchedule(req.MeetingDate, req.NominationDeadline, req.VotingDeadline); err != nil {
		return models.Meeting{}, err
	}
	if req.SelectedBookID != nil && !m.IsFinalized {
		return models.Meeting{}, apperr.Conflict("the selected book can only be changed on a finalized meeting")
	}

	theme, newTheme, err := s.themeRef(ctx, m.ClubID, req.ThemeName, adminUserID)
	if err != nil {
		return models.Meeting{}, err
	}

	m.MeetingDate = req.MeetingDate
	m.NominationDeadline = req.NominationDeadline
	m.VotingDeadline = req.VotingDeadline
	m.Theme = theme
	m.Details = trimmed(req.Details)

	if err := s.repo.UpdateMeeting(ctx, m, newTheme, req.SelectedBookID); err != nil {
		return models.Meeting{}, err
	}
	return s.repo.GetMeeting(ctx, meetingID)
}

// DeleteMeeting removes a meeting and, with it, its options and votes.
func (s *Service) DeleteMeeting(ctx context.Context, meetingID, adminUserID string) error {
	if _, err := s.meetingForAdmin(ctx, meetingID, adminUserID); err != nil {
		return err
	}
	return s.repo.DeleteMeeting(ctx, meetingID)
}

// ListMeetings returns a club's meetings, newest first.
func (s *Service) ListMeetings(ctx context.Context, clubID, userID string) ([]models.Meeting, error) {
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return nil, err
	}
	meetings, err := s.repo.ListMeetings(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if meetings == nil {
		meetings = []models.Meeting{}
	}
	return meetings, nil
}

// MeetingDetails assembles the meeting page: phase, deadline hint, options
// with tallies, and the selected book once finalized.
func (s *Service) MeetingDetails(ctx context.Context, meetingID, userID string, now time.Time) (models.MeetingDetails, error) {
	m, err := s.MeetingForMember(ctx, meetingID, userID)
	if err != nil {
		return models.MeetingDetails{}, err
	}

	isAdmin, err := s.repo.IsAdmin(ctx, m.ClubID, userID)
	if err != nil {
		return models.MeetingDetails{}, err
	}

	tallies, err := s.repo.ListOptionTallies(ctx, meetingID, userID)
	if err != nil {
		return models.MeetingDetails{}, err
	}
	SortTallies(tallies)
	if tallies == nil {
		tallies = []models.OptionTally{}
	}

	phase := PhaseOf(m, now)
	details := models.MeetingDetails{
		Meeting:            m,
		Phase:              string(phase),
		Options:            tallies,
		CurrentUserIsAdmin: isAdmin,
	}

	if deadline := lifecycle.NextDeadline(phase, m.NominationDeadline, m.VotingDeadline); deadline != nil {
		details.PhaseEnds = deadline
		details.PhaseEndsIn = humanize.RelTime(*deadline, now, "ago", "from now")
	}

	if m.SelectedBookID != nil {
		book, err := s.repo.GetBook(ctx, *m.SelectedBookID)
		if err != nil {
			return models.MeetingDetails{}, err
		}
		details.SelectedBook = &book
	}

	return details, nil
}

// SortTallies orders options by vote count, most first. Options with equal
// counts keep their nomination order.
func SortTallies(tallies []models.OptionTally) {
	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].VoteCount != tallies[j].VoteCount {
			return tallies[i].VoteCount > tallies[j].VoteCount
		}
		return tallies[i].Option.Seq < tallies[j].Option.Seq
	})
}

// ClubState reports what the club is doing now: the phase of the next
// upcoming unfinalized meeting, or inactive when there is none, plus the
// book picked at the most recent finalized meeting.
func (s *Service) ClubState(ctx context.Context, clubID, userID string, now time.Time) (models.ClubState, error) {
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return models.ClubState{}, err
	}

	state := models.ClubState{State: string(lifecycle.PhaseInactive)}

	next, err := s.repo.UpcomingMeeting(ctx, clubID, now)
	if err != nil {
		return models.ClubState{}, err
	}
	if next != nil {
		state.State = string(PhaseOf(*next, now))
		state.Meeting = next
	}

	last, err := s.repo.LatestFinalizedMeeting(ctx, clubID)
	if err != nil {
		return models.ClubState{}, err
	}
	if last != nil && last.SelectedBookID != nil {
		book, err := s.repo.GetBook(ctx, *last.SelectedBookID)
		if err != nil {
			return models.ClubState{}, err
		}
		state.PreviousPick = &book
	}

	return state, nil
}

// themeRef resolves an optional theme name to an existing club theme whose
// normalized name is identical. Otherwise it returns the theme to create
// together with the meeting.
func (s *Service) themeRef(ctx context.Context, clubID string, name *string, userID string) (*models.ThemeRef, *store.NewTheme, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return nil, nil, nil
	}
	wanted := strings.TrimSpace(*name)

	themes, err := s.repo.ThemeSummaries(ctx, clubID, userID)
	if err != nil {
		return nil, nil, err
	}
	for _, t := range themes {
		if fuzzy.Normalize(t.Theme.Name) == fuzzy.Normalize(wanted) {
			return &models.ThemeRef{ID: t.Theme.ID, Name: t.Theme.Name}, nil, nil
		}
	}

	return nil, &store.NewTheme{Name: wanted, SubmittedBy: userID}, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
