// Package config resolves runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/examprep/internal/exam"
)

// Config holds all runtime configuration.
type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	Exam     ExamConfig
	LogLevel slog.Level

	// BankPath points at a bank JSON file. Empty selects the built-in sample.
	BankPath string
}

// DBConfig selects the history store.
type DBConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string // file path for sqlite, connection URL for postgres
}

// HTTPConfig configures the REST server.
type HTTPConfig struct {
	Addr        string
	CORSOrigins []string
	Timeout     time.Duration
}

// ExamConfig tunes sittings.
type ExamConfig struct {
	Duration     time.Duration
	HistoryLimit int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DB: DBConfig{
			Driver: "sqlite",
		},
		HTTP: HTTPConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000"},
			Timeout:     30 * time.Second,
		},
		Exam: ExamConfig{
			Duration:     exam.DefaultDuration,
			HistoryLimit: exam.HistoryLimit,
		},
		LogLevel: slog.LevelInfo,
	}
}

// FromEnv builds a Config from EXAMPREP_* environment variables, falling
// back to defaults for unset values. Malformed numbers keep the default.
func FromEnv() Config {
	cfg := DefaultConfig()

	cfg.DB.Driver = envOr("EXAMPREP_DB_DRIVER", cfg.DB.Driver)
	cfg.DB.DSN = envOr("EXAMPREP_DB", cfg.DB.DSN)
	cfg.BankPath = envOr("EXAMPREP_BANK", cfg.BankPath)

	cfg.HTTP.Addr = envOr("EXAMPREP_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.CORSOrigins = csvOr("EXAMPREP_CORS_ORIGINS", strings.Join(cfg.HTTP.CORSOrigins, ","))

	if d, err := time.ParseDuration(os.Getenv("EXAMPREP_EXAM_DURATION")); err == nil && d > 0 {
		cfg.Exam.Duration = d
	}
	cfg.Exam.HistoryLimit = envInt("EXAMPREP_HISTORY_LIMIT", cfg.Exam.HistoryLimit)

	if lvl, err := ParseLogLevel(os.Getenv("EXAMPREP_LOG_LEVEL")); err == nil {
		cfg.LogLevel = lvl
	}

	return cfg
}

// Validate checks driver and limits.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite":
	case "postgres":
		if c.DB.DSN == "" {
			return fmt.Errorf("EXAMPREP_DB is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver: %q", c.DB.Driver)
	}
	if c.Exam.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.Exam.HistoryLimit)
	}
	if c.Exam.Duration <= 0 {
		return fmt.Errorf("exam duration must be positive, got %s", c.Exam.Duration)
	}
	return nil
}

// ParseLogLevel maps debug|info|warn|error to a slog level. An empty string
// is an error so callers keep their default.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return lvl, fmt.Errorf("empty log level")
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return lvl, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return lvl, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
