// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package club

import (
	"context"
	"strings"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/lifecycle"
	"github.com/AdamDeHovitz/readers-choice/models"
	"github.com/AdamDeHovitz/readers-choice/store"
)

// Nominate proposes an existing book for a meeting and returns the new
// book option id.
func (s *Service) Nominate(ctx context.Context, meetingID, bookID, userID string) (string, error) {
	if strings.TrimSpace(bookID) == "" {
		return "", apperr.Validation("book_id is required")
	}
	option, err := s.nominate(ctx, store.Nomination{MeetingID: meetingID, BookID: bookID, UserID: userID})
	if err != nil {
		return "", err
	}
	return option.ID, nil
}

// NominateBook resolves a catalog search result and nominates it, as one
// unit: a failed nomination leaves no new book behind.
func (s *Service) NominateBook(ctx context.Context, meetingID string, result models.BookSearchResult, userID string) (models.BookOption, error) {
	if strings.TrimSpace(result.ExternalID) == "" || strings.TrimSpace(result.ExternalSource) == "" {
		return models.BookOption{}, apperr.Validation("external_source and external_id are required")
	}
	return s.nominate(ctx, store.Nomination{MeetingID: meetingID, Book: &result, UserID: userID})
}

func (s *Service) nominate(ctx context.Context, n store.Nomination) (models.BookOption, error) {
	if _, err := s.MeetingForMember(ctx, n.MeetingID, n.UserID); err != nil {
		return models.BookOption{}, err
	}

	now := s.now()
	return s.repo.Nominate(ctx, n, func(m models.Meeting) error {
		return lifecycle.CheckNominate(PhaseOf(m, now))
	})
}

// ToggleVote flips the caller's vote on a book option. Two toggles in a row
// return the option to its original state.
func (s *Service) ToggleVote(ctx context.Context, optionID, userID string) (string, error) {
	option, err := s.repo.GetOption(ctx, optionID)
	if err != nil {
		return "", err
	}

	if _, err := s.MeetingForMember(ctx, option.MeetingID, userID); err != nil {
		return "", err
	}

	now := s.now()
	return s.repo.ToggleVote(ctx, optionID, userID, func(m models.Meeting) error {
		return lifecycle.CheckVote(PhaseOf(m, now))
	})
}

// Finalize selects the meeting's book. Admin only, from nominating or
// voting. A second finalize fails with apperr.ErrAlreadyFinalized and leaves
// the first selection in place.
func (s *Service) Finalize(ctx context.Context, meetingID, selectedBookID, adminUserID string) (models.Meeting, error) {
	if strings.TrimSpace(selectedBookID) == "" {
		return models.Meeting{}, apperr.Validation("selected_book_id is required")
	}
	if _, err := s.meetingForAdmin(ctx, meetingID, adminUserID); err != nil {
		return models.Meeting{}, err
	}

	now := s.now()
	return s.repo.FinalizeMeeting(ctx, meetingID, selectedBookID, adminUserID, func(m models.Meeting) error {
		return lifecycle.CheckFinalize(PhaseOf(m, now))
	})
}
