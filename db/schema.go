// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	schema, err := Schema(dialect)
	if err != nil {
		return err
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema returns the DDL for dialect.
func Schema(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return postgresSchema, nil
	case DialectSQLite:
		return sqliteSchema, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dialect)
	}
}

// DropAll removes every table, children first. Used by tests against a shared database.
func DropAll(db *sql.DB) error {
	_, err := db.Exec(`
		DROP TABLE IF EXISTS personal_ranking;
		DROP TABLE IF EXISTS vote;
		DROP TABLE IF EXISTS book_option;
		DROP TABLE IF EXISTS meeting;
		DROP TABLE IF EXISTS theme_vote;
		DROP TABLE IF EXISTS theme;
		DROP TABLE IF EXISTS book;
		DROP TABLE IF EXISTS club_member;
		DROP TABLE IF EXISTS club;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return nil
}

const postgresSchema = `
-- Clubs
CREATE TABLE IF NOT EXISTS club (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    created_by TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

-- Members
CREATE TABLE IF NOT EXISTS club_member (
    club_id TEXT NOT NULL REFERENCES club(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    joined_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (club_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_club_member_user_id ON club_member(user_id);

-- Books
CREATE TABLE IF NOT EXISTS book (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    cover_url TEXT,
    description TEXT,
    isbn TEXT,
    published_year INTEGER,
    page_count INTEGER,
    external_source TEXT NOT NULL,
    external_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    UNIQUE (external_source, external_id)
);

-- Themes
CREATE TABLE IF NOT EXISTS theme (
    id TEXT PRIMARY KEY,
    club_id TEXT NOT NULL REFERENCES club(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    submitted_by TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_theme_club_id ON theme(club_id);

CREATE TABLE IF NOT EXISTS theme_vote (
    theme_id TEXT NOT NULL REFERENCES theme(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (theme_id, user_id)
);

-- Meetings
CREATE TABLE IF NOT EXISTS meeting (
    id TEXT PRIMARY KEY,
    club_id TEXT NOT NULL REFERENCES club(id) ON DELETE CASCADE,
    meeting_date TIMESTAMPTZ NOT NULL,
    nomination_deadline TIMESTAMPTZ,
    voting_deadline TIMESTAMPTZ,
    theme_id TEXT REFERENCES theme(id) ON DELETE SET NULL,
    details TEXT,
    is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
    selected_book_id TEXT REFERENCES book(id),
    finalized_at TIMESTAMPTZ,
    finalized_by TEXT,
    created_at TIMESTAMPTZ NOT NULL,
    CHECK ((is_finalized AND selected_book_id IS NOT NULL) OR (NOT is_finalized AND selected_book_id IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_meeting_club_id ON meeting(club_id);

-- Book options
CREATE TABLE IF NOT EXISTS book_option (
    seq BIGSERIAL,
    id TEXT PRIMARY KEY,
    meeting_id TEXT NOT NULL REFERENCES meeting(id) ON DELETE CASCADE,
    book_id TEXT NOT NULL REFERENCES book(id),
    proposed_by TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    UNIQUE (meeting_id, book_id)
);

CREATE INDEX IF NOT EXISTS idx_book_option_meeting_id ON book_option(meeting_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    book_option_id TEXT NOT NULL REFERENCES book_option(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (book_option_id, user_id)
);

-- Personal rankings
CREATE TABLE IF NOT EXISTS personal_ranking (
    user_id TEXT NOT NULL,
    club_id TEXT NOT NULL REFERENCES club(id) ON DELETE CASCADE,
    year INTEGER NOT NULL,
    book_id TEXT NOT NULL REFERENCES book(id),
    rank INTEGER CHECK (rank IS NULL OR rank >= 1),
    PRIMARY KEY (user_id, club_id, year, book_id)
);

CREATE INDEX IF NOT EXISTS idx_personal_ranking_club_year ON personal_ranking(club_id, year);
`

const sqliteSchema = `
-- Clubs
CREATE TABLE IF NOT EXISTS club (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    created_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Members
CREATE TABLE IF NOT EXISTS club_member (
    club_id TEXT NOT NULL REFERENCES club(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    joined_at TIMESTAMP NOT NULL,
    PRIMARY KEY (club_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_club_member_user_id ON club_member(user_id);

-- Books
CREATE TABLE IF NOT EXISTS book (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    cover_url TEXT,
    description TEXT,
    isbn TEXT,
    published_year INTEGER,
    page_count INTEGER,
    external_source TEXT NOT NULL,
    external_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (external_source, external_id)
);

-- Themes
CREATE TABLE IF NOT EXISTS theme (
    id TEXT PRIMARY KEY,
    club_id TEXT NOT NULL REFERENCES club(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    submitted_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_theme_club_id ON theme(club_id);

CREATE TABLE IF NOT EXISTS theme_vote (
    theme_id TEXT NOT NULL REFERENCES theme(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (theme_id, user_id)
);

-- Meetings
CREATE TABLE IF NOT EXISTS meeting (
    id TEXT PRIMARY KEY,
    club_id TEXT NOT NULL REFERENCES club(id) ON DELETE CASCADE,
    meeting_date TIMESTAMP NOT NULL,
    nomination_deadline TIMESTAMP,
    voting_deadline TIMESTAMP,
    theme_id TEXT REFERENCES theme(id) ON DELETE SET NULL,
    details TEXT,
    is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
    selected_book_id TEXT REFERENCES book(id),
    finalized_at TIMESTAMP,
    finalized_by TEXT,
    created_at TIMESTAMP NOT NULL,
    CHECK ((is_finalized AND selected_book_id IS NOT NULL) OR (NOT is_finalized AND selected_book_id IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_meeting_club_id ON meeting(club_id);

-- Book options
CREATE TABLE IF NOT EXISTS book_option (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    meeting_id TEXT NOT NULL REFERENCES meeting(id) ON DELETE CASCADE,
    book_id TEXT NOT NULL REFERENCES book(id),
    proposed_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (meeting_id, book_id)
);

CREATE INDEX IF NOT EXISTS idx_book_option_meeting_id ON book_option(meeting_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    book_option_id TEXT NOT NULL REFERENCES book_option(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (book_option_id, user_id)
);

-- Personal rankings
CREATE TABLE IF NOT EXISTS personal_ranking (
    user_id TEXT NOT NULL,
    club_id TEXT NOT NULL REFERENCES club(id) ON DELETE CASCADE,
    year INTEGER NOT NULL,
    book_id TEXT NOT NULL REFERENCES book(id),
    rank INTEGER CHECK (rank IS NULL OR rank >= 1),
    PRIMARY KEY (user_id, club_id, year, book_id)
);

CREATE INDEX IF NOT EXISTS idx_personal_ranking_club_year ON personal_ranking(club_id, year);
`
