// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	// Shared with the account service that issues sessions
	SessionSecret string `env:"SESSION_SECRET"`
	SessionIssuer string `env:"SESSION_ISSUER"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`

	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:","`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// ParseFlags builds the configuration. CLI flags win over environment
// variables, which win over defaults. A .env file in the working directory,
// if present, fills in variables that are not already set.
func ParseFlags(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	flags := flag.NewFlagSet("readers-choice", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Session signing secret (prefer env)")
	flags.StringVar(&cfg.SessionIssuer, "session-issuer", cfg.SessionIssuer, "Expected session issuer")

	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json, default by terminal)")

	origins := flags.String("cors-origins", strings.Join(cfg.CORSOrigins, ","), "Comma separated allowed origins")
	flags.Float64Var(&cfg.RateLimitRPS, "rate-rps", cfg.RateLimitRPS, "Per-user requests per second on write routes")
	flags.IntVar(&cfg.RateLimitBurst, "rate-burst", cfg.RateLimitBurst, "Per-user burst on write routes")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.CORSOrigins = splitList(*origins)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return fmt.Errorf("invalid database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET required")
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (text or json)", cfg.LogFormat)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return errors.New("rate limit rps and burst must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
