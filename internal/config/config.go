package config

import "time"

// Config is the root configuration for one pipeline invocation.
type Config struct {
	Secret   SecretConfig   `yaml:"secret"`
	Market   MarketConfig   `yaml:"market"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Database DatabaseConfig `yaml:"database"`
}

// SecretConfig locates the database credential secret.
type SecretConfig struct {
	Name   string `yaml:"name"`   // Secrets Manager secret name
	Region string `yaml:"region"` // AWS region the secret (and bucket) live in
}

// MarketConfig holds quote provider settings.
type MarketConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Symbols        []string      `yaml:"symbols"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestsPerSec float64       `yaml:"requests_per_sec"`
}

// ArchiveConfig holds object storage settings.
type ArchiveConfig struct {
	Bucket string `yaml:"bucket"`
}

// DatabaseConfig holds the relational sink settings.
type DatabaseConfig struct {
	// Table receives one row per quote. Validated as a bare SQL identifier
	// because it is interpolated into the insert statement.
	Table string `yaml:"table"`

	// MaxAttempts bounds the connection retry loop.
	MaxAttempts int `yaml:"max_attempts"`

	// RetryDelaySeconds is the backoff base: the sleep before attempt n+1 is
	// RetryDelaySeconds^n seconds (2 -> sleeps of 2s, 4s with three attempts).
	RetryDelaySeconds int `yaml:"retry_delay_seconds"`
}
