package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophjournal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish an absent key from a zero value.
type JsonConfig struct {
	ServerURL          *string         `json:"server_url"`
	DatabasePath       *string         `json:"database_path"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	UserID             *string         `json:"user_id"`
	AccessToken        *string         `json:"access_token"`
	LogLevel           *string         `json:"log_level"`
	LogFormat          *string         `json:"log_format"`
	EncryptionDisabled *bool           `json:"encryption_disabled"`
}

// parseJSON overlays cfg with the keys present in the JSON file at path.
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.ServerURL, jc.ServerURL)
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.UserID, jc.UserID)
	setIf(&cfg.AccessToken, jc.AccessToken)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	setIf(&cfg.EncryptionDisabled, jc.EncryptionDisabled)
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
