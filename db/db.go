// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// Open connects to the database named by url and verifies the connection.
// dialect is "postgres" or "sqlite".
func Open(dialect, url string) (*sql.DB, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("database url is required")
	}

	var (
		conn *sql.DB
		err  error
	)
	switch dialect {
	case DialectPostgres:
		conn, err = sql.Open("postgres", url)
	case DialectSQLite:
		conn, err = sql.Open("sqlite", sqliteDSN(url))
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// One writer at a time; pragmas are per connection.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}

	return conn, nil
}

// sqliteDSN appends the connection pragmas to a file path or file: URI.
func sqliteDSN(url string) string {
	dsn := strings.TrimPrefix(url, "sqlite://")
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		dsn = filepath.Clean(dsn)
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}
