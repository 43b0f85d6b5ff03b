package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "DATA_DIR", "RELAY_INTERVAL", "SESSION_TTL", "WORKER_ID", "RATE_LIMIT", "RATE_BURST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, 50*time.Millisecond, cfg.RelayInterval)
	assert.Zero(t, cfg.SessionTTL)
	assert.Empty(t, cfg.WorkerID)
	assert.Equal(t, 50.0, cfg.RateLimit)
	assert.Equal(t, 100, cfg.RateBurst)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("RELAY_INTERVAL", "250ms")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("WORKER_ID", "relay-a")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("RATE_BURST", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.RelayInterval)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "relay-a", cfg.WorkerID)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateBurst)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"relay interval not a duration", "RELAY_INTERVAL", "fast"},
		{"relay interval zero", "RELAY_INTERVAL", "0s"},
		{"session ttl not a duration", "SESSION_TTL", "forever"},
		{"negative rate limit", "RATE_LIMIT", "-1"},
		{"rate limit not a number", "RATE_LIMIT", "lots"},
		{"zero burst", "RATE_BURST", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RELAY_INTERVAL", "")
			t.Setenv("SESSION_TTL", "")
			t.Setenv("RATE_LIMIT", "")
			t.Setenv("RATE_BURST", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
