// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database connection and creates the schema.

# Connecting

Open picks the driver by database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - postgres: github.com/lib/pq, url is a libpq connection string
  - sqlite: modernc.org/sqlite, url is a file path or file: URI

SQLite connections get foreign_keys, busy_timeout and WAL pragmas and are
limited to a single open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The two dialects differ only in timestamp types and the book_option
sequence column.

# Tables

  - club: Book club
  - club_member: Membership and admin flag
  - book: Catalog entry, unique per (external_source, external_id)
  - theme, theme_vote: Theme suggestions and upvotes
  - meeting: Scheduled or finalized meeting
  - book_option: A nomination for a meeting
  - vote: One row per (option, user)
  - personal_ranking: A user's ranks for a club year, NULL rank = not read

# Relationships

	club 1──* club_member
	club 1──* meeting
	club 1──* theme 1──* theme_vote
	meeting 1──* book_option 1──* vote
	book 1──* book_option
	club 1──* personal_ranking

Deleting a meeting cascades to its options and their votes.

# Constraints

  - meeting: is_finalized iff selected_book_id IS NOT NULL
  - book_option: UNIQUE (meeting_id, book_id)
  - vote: PRIMARY KEY (book_option_id, user_id)
  - personal_ranking: PRIMARY KEY (user_id, club_id, year, book_id)
*/
package db
