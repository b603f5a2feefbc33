package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ufmarketplace/ufmarket/internal/flagx"
	"github.com/ufmarketplace/ufmarket/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	EmailDomain    string         `json:"email_domain"`
	DomainMessage  string         `json:"domain_message"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file selected
// via -c or -config. With no such flag the function is a no-op. Read or
// unmarshal errors panic; LoadConfig runs at startup where dying on a broken
// config file is the right move.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.EmailDomain != "" {
		cfg.EmailDomain = jc.EmailDomain
	}
	if jc.DomainMessage != "" {
		cfg.DomainMessage = jc.DomainMessage
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
