package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 240*time.Minute, cfg.Exam.Duration)
	assert.Equal(t, 20, cfg.Exam.HistoryLimit)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("EXAMPREP_DB_DRIVER", "postgres")
	t.Setenv("EXAMPREP_DB", "postgres://localhost/examprep")
	t.Setenv("EXAMPREP_BANK", "/tmp/bank.json")
	t.Setenv("EXAMPREP_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("EXAMPREP_CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("EXAMPREP_EXAM_DURATION", "90m")
	t.Setenv("EXAMPREP_HISTORY_LIMIT", "5")
	t.Setenv("EXAMPREP_LOG_LEVEL", "debug")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/examprep", cfg.DB.DSN)
	assert.Equal(t, "/tmp/bank.json", cfg.BankPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 90*time.Minute, cfg.Exam.Duration)
	assert.Equal(t, 5, cfg.Exam.HistoryLimit)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("EXAMPREP_EXAM_DURATION", "soon")
	t.Setenv("EXAMPREP_HISTORY_LIMIT", "many")
	t.Setenv("EXAMPREP_LOG_LEVEL", "loud")

	cfg := FromEnv()
	def := DefaultConfig()
	assert.Equal(t, def.Exam, cfg.Exam)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"sqlite without dsn", func(c *Config) {}, true},
		{"postgres without dsn", func(c *Config) { c.DB.Driver = "postgres" }, false},
		{"unknown driver", func(c *Config) { c.DB.Driver = "oracle" }, false},
		{"zero history", func(c *Config) { c.Exam.HistoryLimit = 0 }, false},
		{"negative duration", func(c *Config) { c.Exam.Duration = -time.Second }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLogLevel("")
	assert.Error(t, err)
}
