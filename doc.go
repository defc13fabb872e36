// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Readers' Choice API server.

Readers' Choice runs book clubs: members nominate books for an upcoming
meeting, vote during the voting window, and an admin finalizes the pick.
At the end of a year each member ranks the books the club read, and the
club's global ranking is a Borda count over those snapshots.

# Starting the Server

Configuration comes from flags, then environment variables (a .env file in
the working directory is loaded first), then defaults:

	DATABASE_URL=./club.db SESSION_SECRET=... go run .

	go run . -t postgres -d "postgres://..." -session-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): file path for SQLite, connection string for Postgres
  - SESSION_SECRET (-session-secret): HMAC key shared with the account
    service that issues session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_ISSUER (-session-issuer): required iss claim, if set
  - LOG_LEVEL, LOG_FORMAT (-log-level, -log-format): slog level and text/json
  - CORS_ORIGINS (-cors-origins): comma separated allowed origins
  - RATE_LIMIT_RPS, RATE_LIMIT_BURST: per-user limit on vote and ranking writes

# Architecture

  - handlers: HTTP request handlers (clubs, meetings, voting, rankings, themes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: sessions, rate limiting, CORS, logging, JSON helpers
  - club: membership checks and meeting/voting/ranking operations
  - lifecycle: derived meeting phase and the transitions it allows
  - borda: global ranking aggregation
  - fuzzy: theme name matching
  - store, db: persistence on SQLite or Postgres
  - apperr, validation: domain errors and request validation
  - auth, cliparse, logging: sessions, configuration, structured logs

See package documentation for each component.
*/
package main
