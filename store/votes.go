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

// ToggleVote flips the caller's vote on a book option and reports the
// resulting action. check runs against the option's meeting inside the same
// transaction as the write, so a vote never lands on a meeting finalized in
// between.
func (s *Store) ToggleVote(ctx context.Context, optionID, userID string, check func(models.Meeting) error) (string, error) {
	var action string

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var meetingID string
		err := s.queryRow(ctx, tx, `SELECT meeting_id FROM book_option WHERE id = ?`, optionID).Scan(&meetingID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound(toggleVote.notFound)
		}
		if err != nil {
			return fmt.Errorf("query book option: %w", err)
		}

		if err := s.lockMeeting(ctx, tx, meetingID); err != nil {
			return err
		}
		m, err := s.getMeeting(ctx, tx, meetingID)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(m); err != nil {
				return err
			}
		}

		action, err = s.toggle(ctx, tx, toggleVote, optionID, userID)
		return err
	})
	if err != nil {
		return "", err
	}

	return action, nil
}

// ToggleThemeUpvote flips the caller's upvote on a theme.
func (s *Store) ToggleThemeUpvote(ctx context.Context, themeID, userID string) (string, error) {
	return s.toggle(ctx, s.db, toggleThemeVote, themeID, userID)
}

type toggleTable struct {
	del      string
	ins      string
	notFound string
}

var (
	toggleVote = toggleTable{
		del: `DELETE FROM vote WHERE book_option_id = ? AND user_id = ?`,
		ins: `INSERT INTO vote (book_option_id, user_id, created_at) VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING`,
		notFound: "book option not found",
	}
	toggleThemeVote = toggleTable{
		del: `DELETE FROM theme_vote WHERE theme_id = ? AND user_id = ?`,
		ins: `INSERT INTO theme_vote (theme_id, user_id, created_at) VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING`,
		notFound: "theme not found",
	}
)

// toggle is a delete-first flip against the (target, user) primary key.
// An insert that hits an existing row means a concurrent request already
// added it, so the result is still "added".
func (s *Store) toggle(ctx context.Context, q querier, t toggleTable, targetID, userID string) (string, error) {
	res, err := s.exec(ctx, q, t.del, targetID, userID)
	if err != nil {
		return "", fmt.Errorf("remove vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("remove vote: %w", err)
	}
	if n > 0 {
		return models.VoteRemoved, nil
	}

	_, err = s.exec(ctx, q, t.ins, targetID, userID, s.timestamp())
	if isForeignKeyViolation(err) {
		return "", apperr.NotFound(t.notFound)
	}
	if err != nil {
		return "", fmt.Errorf("add vote: %w", err)
	}

	return models.VoteAdded, nil
}
