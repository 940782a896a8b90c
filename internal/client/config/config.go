package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the journal CLI.
//
// EncryptionDisabled runs the client with an unavailable crypto provider:
// new content is stored without encryption and envelopes render as a
// placeholder.
type Config struct {
	ServerURL          string
	DatabasePath       string
	RequestTimeout     time.Duration
	UserID             string
	AccessToken        string
	LogLevel           string
	LogFormat          string
	EncryptionDisabled bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabasePath = "journal.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Load builds a Config from defaults, the JSON file named by the "config"
// flag (if any), then the flags of fs that were set. fs must have been
// prepared with RegisterFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}
