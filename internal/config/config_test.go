package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
secret:
  name: prod/market/mysql
  region: eu-west-1
archive:
  bucket: market-archive
market:
  symbols: [BTC-USD, ETH-USD]
  timeout: 10s
database:
  table: cotizaciones
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Secret.Name != "prod/market/mysql" {
		t.Errorf("Secret.Name = %q, want %q", cfg.Secret.Name, "prod/market/mysql")
	}
	if cfg.Archive.Bucket != "market-archive" {
		t.Errorf("Archive.Bucket = %q, want %q", cfg.Archive.Bucket, "market-archive")
	}
	if len(cfg.Market.Symbols) != 2 || cfg.Market.Symbols[0] != "BTC-USD" {
		t.Errorf("Market.Symbols = %v, want [BTC-USD ETH-USD]", cfg.Market.Symbols)
	}
	if cfg.Market.Timeout != 10*time.Second {
		t.Errorf("Market.Timeout = %s, want 10s", cfg.Market.Timeout)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_BUCKET", "archive-from-env")

	yaml := `
secret:
  name: prod/market/mysql
  region: eu-west-1
archive:
  bucket: ${TEST_BUCKET}
database:
  table: cotizaciones
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Archive.Bucket != "archive-from-env" {
		t.Errorf("Archive.Bucket = %q, want %q", cfg.Archive.Bucket, "archive-from-env")
	}
}

func TestLoadAndValidateAppliesDefaults(t *testing.T) {
	yaml := `
secret:
  name: prod/market/mysql
  region: eu-west-1
archive:
  bucket: market-archive
database:
  table: cotizaciones
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Market.BaseURL != DefaultBaseURL {
		t.Errorf("Market.BaseURL = %q, want default %q", cfg.Market.BaseURL, DefaultBaseURL)
	}
	if len(cfg.Market.Symbols) != len(DefaultSymbols) {
		t.Errorf("Market.Symbols = %v, want defaults %v", cfg.Market.Symbols, DefaultSymbols)
	}
	if cfg.Database.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("Database.MaxAttempts = %d, want %d", cfg.Database.MaxAttempts, DefaultMaxAttempts)
	}
	if cfg.Database.RetryDelaySeconds != DefaultRetryDelaySeconds {
		t.Errorf("Database.RetryDelaySeconds = %d, want %d", cfg.Database.RetryDelaySeconds, DefaultRetryDelaySeconds)
	}
	if cfg.Market.Timeout != DefaultTimeout {
		t.Errorf("Market.Timeout = %s, want %s", cfg.Market.Timeout, DefaultTimeout)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing secret name", func(c *Config) { c.Secret.Name = "" }},
		{"missing region", func(c *Config) { c.Secret.Region = "" }},
		{"missing bucket", func(c *Config) { c.Archive.Bucket = "" }},
		{"missing table", func(c *Config) { c.Database.Table = "" }},
		{"table not an identifier", func(c *Config) { c.Database.Table = "quotes; DROP TABLE" }},
		{"empty symbols", func(c *Config) { c.Market.Symbols = nil }},
		{"blank symbol entry", func(c *Config) { c.Market.Symbols = []string{"BTC-USD", ""} }},
		{"zero attempts", func(c *Config) { c.Database.MaxAttempts = 0 }},
		{"zero retry delay", func(c *Config) { c.Database.RetryDelaySeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SECRET_NAME", "prod/market/mysql")
	t.Setenv("REGION_NAME", "eu-west-1")
	t.Setenv("BUCKET_DEST", "market-archive")
	t.Setenv("DB_TABLE_NAME", "cotizaciones")
	t.Setenv("SYMBOLS", "BTC-USD, ETH-USD ,")
	t.Setenv("REQUEST_TIMEOUT_SEC", "5")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Secret.Region != "eu-west-1" {
		t.Errorf("Secret.Region = %q, want %q", cfg.Secret.Region, "eu-west-1")
	}
	if len(cfg.Market.Symbols) != 2 || cfg.Market.Symbols[1] != "ETH-USD" {
		t.Errorf("Market.Symbols = %v, want [BTC-USD ETH-USD]", cfg.Market.Symbols)
	}
	if cfg.Market.Timeout != 5*time.Second {
		t.Errorf("Market.Timeout = %s, want 5s", cfg.Market.Timeout)
	}
	if cfg.Database.Table != "cotizaciones" {
		t.Errorf("Database.Table = %q, want %q", cfg.Database.Table, "cotizaciones")
	}
}

func TestFromEnvMissingRequired(t *testing.T) {
	t.Setenv("SECRET_NAME", "")
	t.Setenv("REGION_NAME", "eu-west-1")
	t.Setenv("BUCKET_DEST", "market-archive")
	t.Setenv("DB_TABLE_NAME", "cotizaciones")

	if _, err := FromEnv(); err == nil {
		t.Error("FromEnv() = nil error, want validation failure")
	}
}

func validConfig() *Config {
	cfg := &Config{
		Secret:   SecretConfig{Name: "prod/market/mysql", Region: "eu-west-1"},
		Archive:  ArchiveConfig{Bucket: "market-archive"},
		Database: DatabaseConfig{Table: "cotizaciones"},
	}
	cfg.applyDefaults()
	return cfg
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
