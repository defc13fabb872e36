// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/models"
)

// ReplaceRankings swaps the whole ranking snapshot for (user, club, year) in
// one transaction. Ranked books get their rank, unread books a NULL rank.
func (s *Store) ReplaceRankings(ctx context.Context, userID, clubID string, year int, ranked []models.RankedBook, unread []string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx, `
			DELETE FROM personal_ranking WHERE user_id = ? AND club_id = ? AND year = ?
		`, userID, clubID, year); err != nil {
			return fmt.Errorf("delete rankings: %w", err)
		}

		const insert = `
			INSERT INTO personal_ranking (user_id, club_id, year, book_id, rank)
			VALUES (?, ?, ?, ?, ?)`

		for _, r := range ranked {
			if err := s.insertRanking(ctx, tx, insert, userID, clubID, year, r.BookID, r.Rank); err != nil {
				return err
			}
		}
		for _, bookID := range unread {
			if err := s.insertRanking(ctx, tx, insert, userID, clubID, year, bookID, nil); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) insertRanking(ctx context.Context, tx *sql.Tx, insert, userID, clubID string, year int, bookID string, rank any) error {
	_, err := s.exec(ctx, tx, insert, userID, clubID, year, bookID, rank)
	if isForeignKeyViolation(err) {
		return apperr.NotFoundf("book %s not found", bookID)
	}
	if isUniqueViolation(err) {
		return apperr.Validationf("book %s appears more than once", bookID)
	}
	if err != nil {
		return fmt.Errorf("insert ranking: %w", err)
	}
	return nil
}

// ListRankings returns every ranking row of every member for a club year.
func (s *Store) ListRankings(ctx context.Context, clubID string, year int) ([]models.RankingRow, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT user_id, book_id, rank FROM personal_ranking
		WHERE club_id = ? AND year = ?
		ORDER BY user_id, book_id
	`, clubID, year)
	if err != nil {
		return nil, fmt.Errorf("query rankings: %w", err)
	}
	defer rows.Close()

	var result []models.RankingRow
	for rows.Next() {
		var (
			r    models.RankingRow
			rank sql.NullInt64
		)
		if err := rows.Scan(&r.UserID, &r.BookID, &rank); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		r.Rank = intPtr(rank)
		result = append(result, r)
	}
	return result, rows.Err()
}

// UserRankings returns one user's snapshot for a club year keyed by book id.
// A nil rank marks a book as unread.
func (s *Store) UserRankings(ctx context.Context, userID, clubID string, year int) (map[string]*int, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT book_id, rank FROM personal_ranking
		WHERE user_id = ? AND club_id = ? AND year = ?
	`, userID, clubID, year)
	if err != nil {
		return nil, fmt.Errorf("query user rankings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*int)
	for rows.Next() {
		var (
			bookID string
			rank   sql.NullInt64
		)
		if err := rows.Scan(&bookID, &rank); err != nil {
			return nil, fmt.Errorf("scan user ranking: %w", err)
		}
		result[bookID] = intPtr(rank)
	}
	return result, rows.Err()
}

// YearsWithRankings returns the years with at least one ranked book, newest first.
func (s *Store) YearsWithRankings(ctx context.Context, clubID string) ([]int, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT DISTINCT year FROM personal_ranking
		WHERE club_id = ? AND rank IS NOT NULL
		ORDER BY year DESC
	`, clubID)
	if err != nil {
		return nil, fmt.Errorf("query ranking years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan ranking year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}
