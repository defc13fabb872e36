// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string or SQLite path (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSecret: HS256 secret shared with the account service (required)
  - SessionIssuer: Expected iss claim (optional)
  - LogLevel, LogFormat: Logging setup (see package logging)
  - CORSOrigins: Allowed browser origins
  - RateLimitRPS, RateLimitBurst: Per-user limit on vote and ranking writes

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-session-secret  Session signing secret
	-session-issuer  Session issuer
	-log-level       debug, info, warn, error
	-log-format      text or json
	-cors-origins    Comma separated origins
	-rate-rps        Requests per second
	-rate-burst      Burst size

# Environment Variables

Flags fall back to environment variables, read with caarlos0/env:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	SESSION_SECRET   → -session-secret
	SESSION_ISSUER   → -session-issuer
	LOG_LEVEL        → -log-level
	LOG_FORMAT       → -log-format
	CORS_ORIGINS     → -cors-origins
	RATE_LIMIT_RPS   → -rate-rps
	RATE_LIMIT_BURST → -rate-burst

A .env file in the working directory is loaded first with godotenv. It never
overrides variables already set in the environment.

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or a value is
out of range.
*/
package cliparse
