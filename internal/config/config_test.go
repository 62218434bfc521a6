package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"QUIZ_BANK_SOURCE", "QUIZ_TOPIC", "QUIZ_TIMED", "QUIZ_SECONDS_PER_QUESTION",
		"QUIZ_ADDR", "QUIZ_DB_PATH", "QUIZ_HTTP_TIMEOUT", "QUIZ_OPENTDB_URL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BankSource != "builtin" || !cfg.Timed || cfg.SecondsPerQuestion != 60 {
		t.Fatalf("unexpected quiz defaults: %+v", cfg)
	}
	if cfg.Addr != ":8080" || cfg.DBPath != "quiz.db" || cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected service defaults: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("QUIZ_BANK_SOURCE", "sqlite:bank.db")
	t.Setenv("QUIZ_TIMED", "off")
	t.Setenv("QUIZ_SECONDS_PER_QUESTION", "30")
	t.Setenv("QUIZ_HTTP_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BankSource != "sqlite:bank.db" || cfg.Timed || cfg.SecondsPerQuestion != 30 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.HTTPTimeout != 2*time.Second || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"QUIZ_SECONDS_PER_QUESTION": "0",
		"QUIZ_ADDR":                 " ",
		"LOG_LEVEL":                 "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("QUIZ_TOPIC=Storage\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("QUIZ_TOPIC", "")
	os.Unsetenv("QUIZ_TOPIC")

	if !LoadDotEnv(path) {
		t.Fatalf("expected .env to load")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Topic != "Storage" {
		t.Fatalf("Topic = %q, want Storage", cfg.Topic)
	}
	if LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")) {
		t.Fatalf("missing .env must report false")
	}
}
