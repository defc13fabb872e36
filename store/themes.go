// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/models"
)

// NewTheme is a theme to be created alongside a meeting.
type NewTheme struct {
	Name        string
	SubmittedBy string
}

func (s *Store) CreateTheme(ctx context.Context, clubID, name, userID string) (models.Theme, error) {
	return s.createTheme(ctx, s.db, clubID, NewTheme{Name: name, SubmittedBy: userID})
}

func (s *Store) createTheme(ctx context.Context, q querier, clubID string, nt NewTheme) (models.Theme, error) {
	theme := models.Theme{
		ID:          newID(),
		ClubID:      clubID,
		Name:        nt.Name,
		SubmittedBy: nt.SubmittedBy,
		CreatedAt:   s.timestamp(),
	}

	_, err := s.exec(ctx, q, `
		INSERT INTO theme (id, club_id, name, submitted_by, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, theme.ID, theme.ClubID, theme.Name, theme.SubmittedBy, theme.CreatedAt)
	if isForeignKeyViolation(err) {
		return models.Theme{}, apperr.NotFound("club not found")
	}
	if err != nil {
		return models.Theme{}, fmt.Errorf("insert theme: %w", err)
	}

	return theme, nil
}

func (s *Store) GetTheme(ctx context.Context, themeID string) (models.Theme, error) {
	var t models.Theme
	err := s.queryRow(ctx, s.db, `
		SELECT id, club_id, name, submitted_by, created_at FROM theme WHERE id = ?
	`, themeID).Scan(&t.ID, &t.ClubID, &t.Name, &t.SubmittedBy, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Theme{}, apperr.NotFound("theme not found")
	}
	if err != nil {
		return models.Theme{}, fmt.Errorf("query theme: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

// ThemeSummaries lists a club's themes in submission order with upvote
// counts, the caller's own upvote, and how many meetings used each theme.
func (s *Store) ThemeSummaries(ctx context.Context, clubID, userID string) ([]models.ThemeSummary, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT t.id, t.club_id, t.name, t.submitted_by, t.created_at,
			(SELECT COUNT(*) FROM theme_vote tv WHERE tv.theme_id = t.id),
			(SELECT COUNT(*) FROM theme_vote tv WHERE tv.theme_id = t.id AND tv.user_id = ?),
			(SELECT COUNT(*) FROM meeting m WHERE m.theme_id = t.id)
		FROM theme t
		WHERE t.club_id = ?
		ORDER BY t.created_at, t.id
	`, userID, clubID)
	if err != nil {
		return nil, fmt.Errorf("query themes: %w", err)
	}
	defer rows.Close()

	var summaries []models.ThemeSummary
	for rows.Next() {
		var (
			ts   models.ThemeSummary
			mine int
		)
		if err := rows.Scan(&ts.Theme.ID, &ts.Theme.ClubID, &ts.Theme.Name, &ts.Theme.SubmittedBy, &ts.Theme.CreatedAt,
			&ts.UpvoteCount, &mine, &ts.TimesUsed); err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		ts.Theme.CreatedAt = ts.Theme.CreatedAt.UTC()
		ts.UserHasUpvoted = mine > 0
		summaries = append(summaries, ts)
	}
	return summaries, rows.Err()
}
