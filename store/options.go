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

// Nomination names the book to nominate: an existing BookID, or a catalog
// result that is resolved to a book in the same transaction.
type Nomination struct {
	MeetingID string
	BookID    string
	Book      *models.BookSearchResult
	UserID    string
}

// Nominate creates a book option in one transaction covering book
// resolution, the check against the meeting row, and the insert. Nothing is
// written when any step fails.
func (s *Store) Nominate(ctx context.Context, n Nomination, check func(models.Meeting) error) (models.BookOption, error) {
	var option models.BookOption

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.lockMeeting(ctx, tx, n.MeetingID); err != nil {
			return err
		}
		m, err := s.getMeeting(ctx, tx, n.MeetingID)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(m); err != nil {
				return err
			}
		}

		bookID := n.BookID
		if n.Book != nil {
			bookID, err = s.resolveBook(ctx, tx, *n.Book)
			if err != nil {
				return err
			}
		} else {
			exists, err := s.bookExists(ctx, tx, bookID)
			if err != nil {
				return err
			}
			if !exists {
				return apperr.NotFound("book not found")
			}
		}

		option = models.BookOption{
			ID:         newID(),
			MeetingID:  n.MeetingID,
			BookID:     bookID,
			ProposedBy: n.UserID,
			CreatedAt:  s.timestamp(),
		}
		_, err = s.exec(ctx, tx, `
			INSERT INTO book_option (id, meeting_id, book_id, proposed_by, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, option.ID, option.MeetingID, option.BookID, option.ProposedBy, option.CreatedAt)
		if isUniqueViolation(err) {
			return apperr.ErrDuplicateNomination
		}
		if err != nil {
			return fmt.Errorf("insert book option: %w", err)
		}

		return s.queryRow(ctx, tx, `SELECT seq FROM book_option WHERE id = ?`, option.ID).Scan(&option.Seq)
	})
	if err != nil {
		return models.BookOption{}, err
	}

	return option, nil
}

func (s *Store) GetOption(ctx context.Context, optionID string) (models.BookOption, error) {
	var o models.BookOption
	err := s.queryRow(ctx, s.db, `
		SELECT seq, id, meeting_id, book_id, proposed_by, created_at
		FROM book_option WHERE id = ?
	`, optionID).Scan(&o.Seq, &o.ID, &o.MeetingID, &o.BookID, &o.ProposedBy, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BookOption{}, apperr.NotFound("book option not found")
	}
	if err != nil {
		return models.BookOption{}, fmt.Errorf("query book option: %w", err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return o, nil
}

// ListOptionTallies returns a meeting's options with their books and vote
// counts, in insertion order. userID marks the caller's own votes.
func (s *Store) ListOptionTallies(ctx context.Context, meetingID, userID string) ([]models.OptionTally, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT o.seq, o.id, o.meeting_id, o.book_id, o.proposed_by, o.created_at,
			`+bookColumns+`,
			COUNT(v.user_id),
			COUNT(CASE WHEN v.user_id = ? THEN 1 END)
		FROM book_option o
		JOIN book b ON b.id = o.book_id
		LEFT JOIN vote v ON v.book_option_id = o.id
		WHERE o.meeting_id = ?
		GROUP BY o.seq, o.id, o.meeting_id, o.book_id, o.proposed_by, o.created_at, b.id
		ORDER BY o.seq
	`, userID, meetingID)
	if err != nil {
		return nil, fmt.Errorf("query option tallies: %w", err)
	}
	defer rows.Close()

	var tallies []models.OptionTally
	for rows.Next() {
		var (
			t     models.OptionTally
			book  bookRow
			mine  int
			dests = []any{&t.Option.Seq, &t.Option.ID, &t.Option.MeetingID, &t.Option.BookID, &t.Option.ProposedBy, &t.Option.CreatedAt}
		)
		dests = append(dests, book.dest()...)
		dests = append(dests, &t.VoteCount, &mine)

		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scan option tally: %w", err)
		}
		t.Option.CreatedAt = t.Option.CreatedAt.UTC()
		t.Book = book.value()
		t.UserHasVoted = mine > 0
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}
