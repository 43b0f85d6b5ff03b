package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	Environment   string
	LogLevel      slog.Level
	RedisURL      string
	DataDir       string
	RelayInterval time.Duration
	SessionTTL    time.Duration
	WorkerID      string

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64
	RateBurst int
}

func Load() (*Config, error) {
	relayInterval, err := parseDuration("RELAY_INTERVAL", "50ms")
	if err != nil {
		return nil, err
	}
	if relayInterval <= 0 {
		return nil, fmt.Errorf("RELAY_INTERVAL must be positive, got %s", relayInterval)
	}

	sessionTTL, err := parseDuration("SESSION_TTL", "0")
	if err != nil {
		return nil, err
	}

	rateLimit, err := strconv.ParseFloat(getEnv("RATE_LIMIT", "50"), 64)
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q", os.Getenv("RATE_LIMIT"))
	}
	rateBurst, err := strconv.Atoi(getEnv("RATE_BURST", "100"))
	if err != nil || rateBurst < 1 {
		return nil, fmt.Errorf("invalid RATE_BURST %q", os.Getenv("RATE_BURST"))
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		RelayInterval: relayInterval,
		SessionTTL:    sessionTTL,
		WorkerID:      os.Getenv("WORKER_ID"),
		RateLimit:     rateLimit,
		RateBurst:     rateBurst,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
