package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophjournal/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// "30s" and integer nanoseconds; absent keys keep the current value.
type JsonConfig struct {
	HTTPAddr         *string         `json:"http_addr"`
	DatabaseDSN      *string         `json:"database_dsn"`
	JWTSecret        *string         `json:"jwt_secret"`
	DBConnectTimeout *timex.Duration `json:"db_connect_timeout"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	S3AccessKey      *string         `json:"s3_access_key"`
	S3SecretKey      *string         `json:"s3_secret_key"`
	LogLevel         *string         `json:"log_level"`
}

// parseJSON overlays config with the keys present in the file at path.
func parseJSON(config *Config, path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.JWTSecret, c.JWTSecret)
	if c.DBConnectTimeout != nil {
		config.DBConnectTimeout = c.DBConnectTimeout.Duration
	}
	setIf(&config.S3Bucket, c.S3Bucket)
	setIf(&config.S3Region, c.S3Region)
	setIf(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setIf(&config.S3AccessKey, c.S3AccessKey)
	setIf(&config.S3SecretKey, c.S3SecretKey)
	setIf(&config.LogLevel, c.LogLevel)
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
