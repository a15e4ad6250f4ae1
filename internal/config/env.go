package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// FromEnv builds the config from environment variables only, applies
// defaults, and validates. This is the path used inside Lambda, where no
// config file is available.
//
// Required: SECRET_NAME, REGION_NAME, BUCKET_DEST, DB_TABLE_NAME.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Secret: SecretConfig{
			Name:   os.Getenv("SECRET_NAME"),
			Region: os.Getenv("REGION_NAME"),
		},
		Market: MarketConfig{
			BaseURL:        os.Getenv("MARKET_BASE_URL"),
			Symbols:        splitCSV(os.Getenv("SYMBOLS")),
			Timeout:        time.Duration(envInt("REQUEST_TIMEOUT_SEC", 0)) * time.Second,
			RequestsPerSec: envFloat("REQUESTS_PER_SEC", 0),
		},
		Archive: ArchiveConfig{
			Bucket: os.Getenv("BUCKET_DEST"),
		},
		Database: DatabaseConfig{
			Table:             os.Getenv("DB_TABLE_NAME"),
			MaxAttempts:       envInt("DB_MAX_ATTEMPTS", 0),
			RetryDelaySeconds: envInt("DB_RETRY_DELAY_SEC", 0),
		},
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
