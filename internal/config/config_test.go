package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Fatalf("addr: got %s", cfg.App.Addr())
	}
	if cfg.Throttle.LoginMaxAttempts != 10 {
		t.Fatalf("login max attempts: got %d, want 10", cfg.Throttle.LoginMaxAttempts)
	}
	if cfg.Throttle.LoginBlock() != 5*time.Minute {
		t.Fatalf("login block: got %s, want 5m", cfg.Throttle.LoginBlock())
	}
	if cfg.Throttle.SearchMaxAttempts != 5 {
		t.Fatalf("search max attempts: got %d, want 5", cfg.Throttle.SearchMaxAttempts)
	}
	if cfg.Throttle.SearchWindow() != time.Minute {
		t.Fatalf("search window: got %s, want 1m", cfg.Throttle.SearchWindow())
	}
	if cfg.Throttle.SearchBlock() != 30*time.Second {
		t.Fatalf("search block: got %s, want 30s", cfg.Throttle.SearchBlock())
	}
	if cfg.Postgres.DSN != "" {
		t.Fatalf("dsn should default empty, got %q", cfg.Postgres.DSN)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("THROTTLE_LOGIN_MAX_ATTEMPTS", "4")
	t.Setenv("THROTTLE_SEARCH_BLOCK_SECONDS", "90")
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Fatalf("port: got %s, want 9090", cfg.App.Port)
	}
	if cfg.Throttle.LoginMaxAttempts != 4 {
		t.Fatalf("login max attempts: got %d, want 4", cfg.Throttle.LoginMaxAttempts)
	}
	if cfg.Throttle.SearchBlock() != 90*time.Second {
		t.Fatalf("search block: got %s, want 90s", cfg.Throttle.SearchBlock())
	}
	if cfg.Auth.SessionTTL() != 15*time.Minute {
		t.Fatalf("session ttl: got %s, want 15m", cfg.Auth.SessionTTL())
	}
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("THROTTLE_SEARCH_MAX_ATTEMPTS", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Throttle.SearchMaxAttempts != 5 {
		t.Fatalf("got %d, want fallback 5", cfg.Throttle.SearchMaxAttempts)
	}
}
