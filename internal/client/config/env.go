package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvServerBaseURL  = "UFMARKET_SERVER_URL"
	EnvEmailDomain    = "UFMARKET_EMAIL_DOMAIN"
	EnvDomainMessage  = "UFMARKET_DOMAIN_MESSAGE"
	EnvRequestTimeout = "UFMARKET_REQUEST_TIMEOUT"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first if present; its absence is
// not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvServerBaseURL); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv(EnvEmailDomain); v != "" {
		cfg.EmailDomain = v
	}
	if v := os.Getenv(EnvDomainMessage); v != "" {
		cfg.DomainMessage = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
