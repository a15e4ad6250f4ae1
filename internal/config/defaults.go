package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL           = "https://query1.finance.yahoo.com"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSec    = 2.0
	DefaultMaxAttempts       = 3
	DefaultRetryDelaySeconds = 2
)

// DefaultSymbols is the instrument list loaded when SYMBOLS is not set.
var DefaultSymbols = []string{"BTC-USD", "ETH-USD", "^GSPC", "^IXIC", "GC=F"}

func (c *Config) applyDefaults() {
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = DefaultBaseURL
	}
	if len(c.Market.Symbols) == 0 {
		c.Market.Symbols = append([]string(nil), DefaultSymbols...)
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = DefaultTimeout
	}
	if c.Market.RequestsPerSec == 0 {
		c.Market.RequestsPerSec = DefaultRequestsPerSec
	}
	if c.Database.MaxAttempts == 0 {
		c.Database.MaxAttempts = DefaultMaxAttempts
	}
	if c.Database.RetryDelaySeconds == 0 {
		c.Database.RetryDelaySeconds = DefaultRetryDelaySeconds
	}
}
