// Package config assembles runtime settings for the Bottlerun client.
// Values come from defaults, then an optional JSON file, then
// command-line flags, with later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the Bottlerun client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabasePath: path of the local SQLite database file.
//   - CredentialsPath: path of the local key-value credential store.
//   - CheckoutClearPolicy: "always" (clear submitted cart lines even on
//     a failed order) or "on-success" (clear only after confirmation).
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	DatabasePath        string
	CredentialsPath     string
	CheckoutClearPolicy string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:4000"
	c.RequestTimeout = 12 * time.Second
	c.DatabasePath = "bottlerun.db"
	c.CredentialsPath = "credentials.db"
	c.CheckoutClearPolicy = "always"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
