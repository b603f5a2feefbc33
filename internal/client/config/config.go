package config

import "time"

// Config holds runtime settings for the marketplace CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the backend REST endpoint.
//   - EmailDomain: substring an email must contain to count as institutional.
//   - DomainMessage: text shown when the domain check fails.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerBaseURL  string
	EmailDomain    string
	DomainMessage  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.EmailDomain = "ufl.edu"
	c.DomainMessage = "Only UF email is allowed"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// given), and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
