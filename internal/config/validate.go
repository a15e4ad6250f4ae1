package config

import (
	"errors"
	"fmt"
	"regexp"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Secret.Name == "" {
		return errors.New("secret.name (SECRET_NAME) is required")
	}
	if c.Secret.Region == "" {
		return errors.New("secret.region (REGION_NAME) is required")
	}
	if c.Archive.Bucket == "" {
		return errors.New("archive.bucket (BUCKET_DEST) is required")
	}
	if c.Database.Table == "" {
		return errors.New("database.table (DB_TABLE_NAME) is required")
	}
	if !identifierRe.MatchString(c.Database.Table) {
		return fmt.Errorf("database.table %q is not a valid SQL identifier", c.Database.Table)
	}
	if len(c.Market.Symbols) == 0 {
		return errors.New("market.symbols must not be empty")
	}
	for _, s := range c.Market.Symbols {
		if s == "" {
			return errors.New("market.symbols must not contain empty entries")
		}
	}
	if c.Market.Timeout <= 0 {
		return fmt.Errorf("market.timeout must be positive, got %s", c.Market.Timeout)
	}
	if c.Database.MaxAttempts < 1 {
		return fmt.Errorf("database.max_attempts must be >= 1, got %d", c.Database.MaxAttempts)
	}
	if c.Database.RetryDelaySeconds < 1 {
		return fmt.Errorf("database.retry_delay_seconds must be >= 1, got %d", c.Database.RetryDelaySeconds)
	}
	return nil
}
