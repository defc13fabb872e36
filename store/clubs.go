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

// CreateClub inserts a club and makes its creator an admin member.
func (s *Store) CreateClub(ctx context.Context, name, description, creatorID string) (models.Club, error) {
	club := models.Club{
		ID:          newID(),
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
		CreatedAt:   s.timestamp(),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx, `
			INSERT INTO club (id, name, description, created_by, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, club.ID, club.Name, club.Description, club.CreatedBy, club.CreatedAt); err != nil {
			return fmt.Errorf("insert club: %w", err)
		}

		if _, err := s.exec(ctx, tx, `
			INSERT INTO club_member (club_id, user_id, is_admin, joined_at)
			VALUES (?, ?, ?, ?)
		`, club.ID, creatorID, true, club.CreatedAt); err != nil {
			return fmt.Errorf("insert creator membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Club{}, err
	}

	return club, nil
}

func (s *Store) GetClub(ctx context.Context, clubID string) (models.Club, error) {
	var (
		club        models.Club
		description sql.NullString
	)
	err := s.queryRow(ctx, s.db, `
		SELECT id, name, description, created_by, created_at FROM club WHERE id = ?
	`, clubID).Scan(&club.ID, &club.Name, &description, &club.CreatedBy, &club.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Club{}, apperr.NotFound("club not found")
	}
	if err != nil {
		return models.Club{}, fmt.Errorf("query club: %w", err)
	}

	club.Description = description.String
	club.CreatedAt = club.CreatedAt.UTC()
	return club, nil
}

// AddMember adds userID to the club. Adding an existing member is a conflict.
func (s *Store) AddMember(ctx context.Context, clubID, userID string, isAdmin bool) (models.Member, error) {
	member := models.Member{
		ClubID:   clubID,
		UserID:   userID,
		IsAdmin:  isAdmin,
		JoinedAt: s.timestamp(),
	}

	_, err := s.exec(ctx, s.db, `
		INSERT INTO club_member (club_id, user_id, is_admin, joined_at)
		VALUES (?, ?, ?, ?)
	`, member.ClubID, member.UserID, member.IsAdmin, member.JoinedAt)
	if isUniqueViolation(err) {
		return models.Member{}, apperr.Conflict("user is already a member of this club")
	}
	if isForeignKeyViolation(err) {
		return models.Member{}, apperr.NotFound("club not found")
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("insert member: %w", err)
	}

	return member, nil
}

func (s *Store) ListMembers(ctx context.Context, clubID string) ([]models.Member, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT club_id, user_id, is_admin, joined_at
		FROM club_member WHERE club_id = ?
		ORDER BY joined_at, user_id
	`, clubID)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ClubID, &m.UserID, &m.IsAdmin, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.JoinedAt = m.JoinedAt.UTC()
		members = append(members, m)
	}
	return members, rows.Err()
}

// IsMember reports whether userID belongs to clubID.
func (s *Store) IsMember(ctx context.Context, clubID, userID string) (bool, error) {
	var exists bool
	err := s.queryRow(ctx, s.db, `
		SELECT EXISTS(SELECT 1 FROM club_member WHERE club_id = ? AND user_id = ?)
	`, clubID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

// IsAdmin reports whether userID is an admin of clubID.
func (s *Store) IsAdmin(ctx context.Context, clubID, userID string) (bool, error) {
	var isAdmin bool
	err := s.queryRow(ctx, s.db, `
		SELECT is_admin FROM club_member WHERE club_id = ? AND user_id = ?
	`, clubID, userID).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return isAdmin, nil
}
