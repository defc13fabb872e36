// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package club

import (
	"context"
	"sort"
	"strings"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/borda"
	"github.com/AdamDeHovitz/readers-choice/models"
)

// ValidateRankings checks a ranking snapshot before it is saved.
//
// Book ids must be non-empty and appear once across ranked and unread
// (apperr Validation). The ranks must be exactly 1..len(ranked)
// (apperr.ErrInvalidRanking).
func ValidateRankings(ranked []models.RankedBook, unread []string) error {
	seen := make(map[string]bool, len(ranked)+len(unread))
	for _, r := range ranked {
		if strings.TrimSpace(r.BookID) == "" {
			return apperr.Validation("ranked book_id is required")
		}
		if seen[r.BookID] {
			return apperr.Validationf("book %s appears more than once", r.BookID)
		}
		seen[r.BookID] = true
	}
	for _, id := range unread {
		if strings.TrimSpace(id) == "" {
			return apperr.Validation("unread book_id is required")
		}
		if seen[id] {
			return apperr.Validationf("book %s appears more than once", id)
		}
		seen[id] = true
	}

	k := len(ranked)
	ranks := make([]bool, k+1)
	for _, r := range ranked {
		if r.Rank < 1 || r.Rank > k || ranks[r.Rank] {
			return apperr.ErrInvalidRanking.WithDetails(map[string]any{"book_id": r.BookID, "rank": r.Rank})
		}
		ranks[r.Rank] = true
	}
	return nil
}

// SaveYearRankings replaces the caller's whole ranking snapshot for a club
// year. Afterwards the stored ranks are exactly 1..len(ranked).
func (s *Service) SaveYearRankings(ctx context.Context, userID, clubID string, year int, ranked []models.RankedBook, unread []string) error {
	if year < 1 {
		return apperr.Validation("year is required")
	}
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return err
	}
	if err := ValidateRankings(ranked, unread); err != nil {
		return err
	}
	return s.repo.ReplaceRankings(ctx, userID, clubID, year, ranked, unread)
}

// GlobalRankings aggregates every member's snapshot for a club year with a
// Borda count. Nothing is stored; the order is computed on each call.
func (s *Service) GlobalRankings(ctx context.Context, clubID string, year int) ([]models.GlobalRanking, error) {
	rows, err := s.repo.ListRankings(ctx, clubID, year)
	if err != nil {
		return nil, err
	}
	return borda.Aggregate(rows), nil
}

// RankingYears returns the years in which the club finalized a meeting,
// newest first.
func (s *Service) RankingYears(ctx context.Context, clubID, userID string) ([]int, error) {
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return nil, err
	}
	meetings, err := s.repo.ListFinalizedMeetings(ctx, clubID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	years := []int{}
	for _, m := range meetings {
		y := m.MeetingDate.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// YearBooks lists the books the club read in a year with the caller's rank.
// Ranked books come first by rank, then the rest by meeting date.
func (s *Service) YearBooks(ctx context.Context, clubID string, year int, userID string) ([]models.YearBook, error) {
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return nil, err
	}
	meetings, err := s.repo.ListFinalizedMeetings(ctx, clubID)
	if err != nil {
		return nil, err
	}
	mine, err := s.repo.UserRankings(ctx, userID, clubID, year)
	if err != nil {
		return nil, err
	}

	books := []models.YearBook{}
	seen := make(map[string]bool)
	for _, m := range meetings {
		if m.MeetingDate.Year() != year || m.SelectedBookID == nil || seen[*m.SelectedBookID] {
			continue
		}
		seen[*m.SelectedBookID] = true

		book, err := s.repo.GetBook(ctx, *m.SelectedBookID)
		if err != nil {
			return nil, err
		}
		books = append(books, models.YearBook{
			Book:        book,
			MeetingDate: m.MeetingDate,
			Rank:        mine[book.ID],
		})
	}

	sort.SliceStable(books, func(i, j int) bool {
		a, b := books[i], books[j]
		switch {
		case a.Rank != nil && b.Rank != nil:
			return *a.Rank < *b.Rank
		case a.Rank != nil:
			return true
		case b.Rank != nil:
			return false
		default:
			return a.MeetingDate.Before(b.MeetingDate)
		}
	})
	return books, nil
}

// YearsWithRankings returns the years for which any member has ranked a book.
func (s *Service) YearsWithRankings(ctx context.Context, clubID, userID string) ([]int, error) {
	if err := s.RequireMember(ctx, clubID, userID); err != nil {
		return nil, err
	}
	years, err := s.repo.YearsWithRankings(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if years == nil {
		years = []int{}
	}
	return years, nil
}
