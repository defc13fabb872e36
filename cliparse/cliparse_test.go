// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Errorf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SESSION_ISSUER", "accounts")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.DatabaseType)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if cfg.SessionIssuer != "accounts" {
		t.Errorf("expected issuer accounts, got %q", cfg.SessionIssuer)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:other.db", "-session-secret", "cli-secret", "-rate-burst", "3"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:other.db" {
		t.Errorf("CLI should override env: got %q", cfg.DatabaseURL)
	}
	if cfg.SessionSecret != "cli-secret" {
		t.Errorf("CLI should override env: got %q", cfg.SessionSecret)
	}
	if cfg.RateLimitBurst != 3 {
		t.Errorf("expected burst 3, got %d", cfg.RateLimitBurst)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing database url", map[string]string{"SESSION_SECRET": "s"}, nil},
		{"missing session secret", map[string]string{"DATABASE_URL": "file:x.db"}, nil},
		{"bad database type", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s"}, []string{"-t", "mysql"}},
		{"bad port env", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s", "PORT": "abc"}, nil},
		{"bad log format", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s"}, []string{"-log-format", "xml"}},
		{"zero rate", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s", "RATE_LIMIT_RPS": "0"}, nil},
		{"unknown flag", map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "s"}, []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitList() = %v", got)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}
