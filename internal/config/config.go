package config

import "time"

// Config holds runtime settings for the relocost CLI.
//
// Fields:
//   - BaseURL: root of the remote estimation API, including the version prefix.
//   - RequestTimeout: per-request timeout applied by the HTTP gateway.
//   - PollInterval: how often a batch job's status is re-fetched.
//   - DatabaseFile: path of the sqlite file holding the persisted session.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	DatabaseFile   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000/api/v1"
	c.RequestTimeout = 30 * time.Second
	c.PollInterval = 2 * time.Second
	c.DatabaseFile = "relocost.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
