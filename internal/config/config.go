// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	BankSource         string
	Topic              string
	Timed              bool
	SecondsPerQuestion int
	Addr               string
	DBPath             string
	HTTPTimeout        time.Duration
	OpenTDBURL         string
	LogLevel           slog.Level
}

// LoadDotEnv loads an optional .env file. It reports whether one was found.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		BankSource:         getEnv("QUIZ_BANK_SOURCE", "builtin"),
		Topic:              getEnv("QUIZ_TOPIC", ""),
		Timed:              getEnvBool("QUIZ_TIMED", true),
		SecondsPerQuestion: getEnvInt("QUIZ_SECONDS_PER_QUESTION", 60),
		Addr:               getEnv("QUIZ_ADDR", ":8080"),
		DBPath:             getEnv("QUIZ_DB_PATH", "quiz.db"),
		HTTPTimeout:        getEnvDuration("QUIZ_HTTP_TIMEOUT", 5*time.Second),
		OpenTDBURL:         getEnv("QUIZ_OPENTDB_URL", "https://opentdb.com/api.php"),
		LogLevel:           level,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BankSource) == "" {
		return fmt.Errorf("QUIZ_BANK_SOURCE cannot be empty")
	}
	if c.SecondsPerQuestion <= 0 {
		return fmt.Errorf("QUIZ_SECONDS_PER_QUESTION must be > 0")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("QUIZ_ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("QUIZ_DB_PATH cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("QUIZ_HTTP_TIMEOUT must be > 0")
	}
	return nil
}

func parseLevel(value string) (slog.Level, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
