// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/models"
)

const meetingSelect = `
	SELECT m.id, m.club_id, m.meeting_date, m.nomination_deadline, m.voting_deadline,
		m.theme_id, t.name, m.details, m.is_finalized, m.selected_book_id,
		m.finalized_at, m.finalized_by, m.created_at
	FROM meeting m
	LEFT JOIN theme t ON t.id = m.theme_id`

// scanMeeting reads one meetingSelect row. The optional theme join is
// normalized to a nil or populated *ThemeRef.
func scanMeeting(row scanner) (models.Meeting, error) {
	var (
		m                  models.Meeting
		nominationDeadline sql.NullTime
		votingDeadline     sql.NullTime
		themeID            sql.NullString
		themeName          sql.NullString
		details            sql.NullString
		selectedBookID     sql.NullString
		finalizedAt        sql.NullTime
		finalizedBy        sql.NullString
	)

	err := row.Scan(&m.ID, &m.ClubID, &m.MeetingDate, &nominationDeadline, &votingDeadline,
		&themeID, &themeName, &details, &m.IsFinalized, &selectedBookID,
		&finalizedAt, &finalizedBy, &m.CreatedAt)
	if err != nil {
		return models.Meeting{}, err
	}

	m.MeetingDate = m.MeetingDate.UTC()
	m.CreatedAt = m.CreatedAt.UTC()
	m.NominationDeadline = timePtr(nominationDeadline)
	m.VotingDeadline = timePtr(votingDeadline)
	if themeID.Valid {
		m.Theme = &models.ThemeRef{ID: themeID.String, Name: themeName.String}
	}
	m.Details = stringPtr(details)
	m.SelectedBookID = stringPtr(selectedBookID)
	m.FinalizedAt = timePtr(finalizedAt)
	m.FinalizedBy = stringPtr(finalizedBy)

	return m, nil
}

func (s *Store) scanMeetings(rows *sql.Rows) ([]models.Meeting, error) {
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// CreateMeeting inserts m, assigning its id and creation time.
// A finalized meeting must carry its selected book. When newTheme is set,
// the theme is created in the same transaction and attached to m.
func (s *Store) CreateMeeting(ctx context.Context, m models.Meeting, newTheme *NewTheme) (models.Meeting, error) {
	m.ID = newID()
	m.CreatedAt = s.timestamp()
	m.MeetingDate = m.MeetingDate.UTC()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if newTheme != nil {
			theme, err := s.createTheme(ctx, tx, m.ClubID, *newTheme)
			if err != nil {
				return err
			}
			m.Theme = &models.ThemeRef{ID: theme.ID, Name: theme.Name}
		}

		var themeID *string
		if m.Theme != nil {
			themeID = &m.Theme.ID
		}

		_, err := s.exec(ctx, tx, `
			INSERT INTO meeting (id, club_id, meeting_date, nomination_deadline, voting_deadline,
				theme_id, details, is_finalized, selected_book_id, finalized_at, finalized_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, m.ID, m.ClubID, m.MeetingDate, utcPtr(m.NominationDeadline), utcPtr(m.VotingDeadline),
			themeID, m.Details, m.IsFinalized, m.SelectedBookID, utcPtr(m.FinalizedAt), m.FinalizedBy, m.CreatedAt)
		if isForeignKeyViolation(err) {
			return apperr.NotFound("club, theme or book not found")
		}
		if err != nil {
			return fmt.Errorf("insert meeting: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Meeting{}, err
	}

	return m, nil
}

func (s *Store) GetMeeting(ctx context.Context, meetingID string) (models.Meeting, error) {
	return s.getMeeting(ctx, s.db, meetingID)
}

func (s *Store) getMeeting(ctx context.Context, q querier, meetingID string) (models.Meeting, error) {
	m, err := scanMeeting(s.queryRow(ctx, q, meetingSelect+` WHERE m.id = ?`, meetingID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Meeting{}, apperr.NotFound("meeting not found")
	}
	if err != nil {
		return models.Meeting{}, fmt.Errorf("query meeting: %w", err)
	}
	return m, nil
}

// ListMeetings returns a club's meetings, newest first.
func (s *Store) ListMeetings(ctx context.Context, clubID string) ([]models.Meeting, error) {
	rows, err := s.query(ctx, s.db, meetingSelect+`
		WHERE m.club_id = ?
		ORDER BY m.meeting_date DESC, m.created_at DESC
	`, clubID)
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}
	return s.scanMeetings(rows)
}

// ListFinalizedMeetings returns a club's finalized meetings, newest first.
func (s *Store) ListFinalizedMeetings(ctx context.Context, clubID string) ([]models.Meeting, error) {
	rows, err := s.query(ctx, s.db, meetingSelect+`
		WHERE m.club_id = ? AND m.is_finalized = TRUE
		ORDER BY m.meeting_date DESC, m.created_at DESC
	`, clubID)
	if err != nil {
		return nil, fmt.Errorf("query finalized meetings: %w", err)
	}
	return s.scanMeetings(rows)
}

// UpcomingMeeting returns the earliest non-finalized meeting dated at or after
// now, or nil when there is none.
func (s *Store) UpcomingMeeting(ctx context.Context, clubID string, now time.Time) (*models.Meeting, error) {
	rows, err := s.query(ctx, s.db, meetingSelect+`
		WHERE m.club_id = ? AND m.is_finalized = FALSE
	`, clubID)
	if err != nil {
		return nil, fmt.Errorf("query open meetings: %w", err)
	}
	meetings, err := s.scanMeetings(rows)
	if err != nil {
		return nil, err
	}

	// Compared in Go; stored timestamp text does not order reliably across dialects.
	var next *models.Meeting
	for i := range meetings {
		m := &meetings[i]
		if m.MeetingDate.Before(now) {
			continue
		}
		if next == nil || m.MeetingDate.Before(next.MeetingDate) {
			next = m
		}
	}
	return next, nil
}

// LatestFinalizedMeeting returns the most recent finalized meeting, or nil.
func (s *Store) LatestFinalizedMeeting(ctx context.Context, clubID string) (*models.Meeting, error) {
	meetings, err := s.ListFinalizedMeetings(ctx, clubID)
	if err != nil {
		return nil, err
	}

	var latest *models.Meeting
	for i := range meetings {
		if latest == nil || meetings[i].MeetingDate.After(latest.MeetingDate) {
			latest = &meetings[i]
		}
	}
	return latest, nil
}

// UpdateMeeting rewrites the schedule, theme and details of m. When
// selectedBookID is non-nil the meeting must already be finalized and its
// selected book is replaced. A newTheme is created and attached in the same
// transaction.
func (s *Store) UpdateMeeting(ctx context.Context, m models.Meeting, newTheme *NewTheme, selectedBookID *string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if newTheme != nil {
			theme, err := s.createTheme(ctx, tx, m.ClubID, *newTheme)
			if err != nil {
				return err
			}
			m.Theme = &models.ThemeRef{ID: theme.ID, Name: theme.Name}
		}

		var themeID *string
		if m.Theme != nil {
			themeID = &m.Theme.ID
		}

		res, err := s.exec(ctx, tx, `
			UPDATE meeting
			SET meeting_date = ?, nomination_deadline = ?, voting_deadline = ?, theme_id = ?, details = ?
			WHERE id = ?
		`, m.MeetingDate.UTC(), utcPtr(m.NominationDeadline), utcPtr(m.VotingDeadline), themeID, m.Details, m.ID)
		if err != nil {
			return fmt.Errorf("update meeting: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("meeting not found")
		}

		if selectedBookID == nil {
			return nil
		}

		exists, err := s.bookExists(ctx, tx, *selectedBookID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("book not found")
		}

		res, err = s.exec(ctx, tx, `
			UPDATE meeting SET selected_book_id = ? WHERE id = ? AND is_finalized = TRUE
		`, *selectedBookID, m.ID)
		if err != nil {
			return fmt.Errorf("update selected book: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.Conflict("the selected book can only be changed on a finalized meeting")
		}
		return nil
	})
}

// DeleteMeeting removes a meeting with its options and votes.
func (s *Store) DeleteMeeting(ctx context.Context, meetingID string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM meeting WHERE id = ?`, meetingID)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("meeting not found")
	}
	return nil
}

// FinalizeMeeting selects bookID as the meeting's winner. check runs inside
// the transaction against the current meeting row.
//
// The write is a compare-and-set on is_finalized, so of two racing calls only
// one succeeds and the other gets apperr.ErrAlreadyFinalized. The book must
// exist, and when the meeting has nominations it must be one of them.
func (s *Store) FinalizeMeeting(ctx context.Context, meetingID, bookID, adminUserID string, check func(models.Meeting) error) (models.Meeting, error) {
	var finalized models.Meeting

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		m, err := s.getMeeting(ctx, tx, meetingID)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(m); err != nil {
				return err
			}
		}

		exists, err := s.bookExists(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("book not found")
		}

		var total, matching int
		err = s.queryRow(ctx, tx, `
			SELECT COUNT(*), COUNT(CASE WHEN book_id = ? THEN 1 END)
			FROM book_option WHERE meeting_id = ?
		`, bookID, meetingID).Scan(&total, &matching)
		if err != nil {
			return fmt.Errorf("check nominations: %w", err)
		}
		if total > 0 && matching == 0 {
			return apperr.Validation("selected book was not nominated for this meeting")
		}

		now := s.timestamp()
		res, err := s.exec(ctx, tx, `
			UPDATE meeting
			SET is_finalized = TRUE, selected_book_id = ?, finalized_at = ?, finalized_by = ?
			WHERE id = ? AND is_finalized = FALSE
		`, bookID, now, adminUserID, meetingID)
		if err != nil {
			return fmt.Errorf("finalize meeting: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.ErrAlreadyFinalized
		}

		m.IsFinalized = true
		m.SelectedBookID = &bookID
		m.FinalizedAt = &now
		m.FinalizedBy = &adminUserID
		finalized = m
		return nil
	})
	if err != nil {
		return models.Meeting{}, err
	}

	return finalized, nil
}
