package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig           = "config"
	flagHTTPAddr         = "addr"
	flagDatabaseDSN      = "dsn"
	flagJWTSecret        = "secret"
	flagDBConnectTimeout = "db-connect-timeout"
	flagS3Bucket         = "s3-bucket"
	flagS3Region         = "s3-region"
	flagS3BaseEndpoint   = "s3-endpoint"
	flagS3AccessKey      = "s3-access-key"
	flagS3SecretKey      = "s3-secret-key"
	flagLogLevel         = "log-level"
)

// registerFlags declares the server flags on fs.
//
// Short forms follow the historical single-letter flags:
//
//	-a  HTTP bind address (e.g. ":8080")
//	-d  PostgreSQL DSN
//	-s  JWT HMAC secret
//	-b  S3 bucket
//	-g  S3 region
//	-e  S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//	-u  S3 access key
//	-p  S3 secret key
func registerFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to a JSON config file")
	fs.StringP(flagHTTPAddr, "a", d.HTTPAddr, "address and port to run server")
	fs.StringP(flagDatabaseDSN, "d", d.DatabaseDSN, "database DSN")
	fs.StringP(flagJWTSecret, "s", d.JWTSecret, "JWT secret key")
	fs.Duration(flagDBConnectTimeout, d.DBConnectTimeout, "how long to wait for the database at startup")
	fs.StringP(flagS3Bucket, "b", d.S3Bucket, "S3 bucket for migration snapshots (empty disables)")
	fs.StringP(flagS3Region, "g", d.S3Region, "S3 region")
	fs.StringP(flagS3BaseEndpoint, "e", d.S3BaseEndpoint, "S3 base endpoint")
	fs.StringP(flagS3AccessKey, "u", d.S3AccessKey, "S3 access key")
	fs.StringP(flagS3SecretKey, "p", d.S3SecretKey, "S3 secret key")
	fs.String(flagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
}

// applyFlags copies every flag that was set on the command line into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := map[string]*string{
		flagHTTPAddr:       &cfg.HTTPAddr,
		flagDatabaseDSN:    &cfg.DatabaseDSN,
		flagJWTSecret:      &cfg.JWTSecret,
		flagS3Bucket:       &cfg.S3Bucket,
		flagS3Region:       &cfg.S3Region,
		flagS3BaseEndpoint: &cfg.S3BaseEndpoint,
		flagS3AccessKey:    &cfg.S3AccessKey,
		flagS3SecretKey:    &cfg.S3SecretKey,
		flagLogLevel:       &cfg.LogLevel,
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if dst, ok := strs[f.Name]; ok {
			*dst, err = fs.GetString(f.Name)
			return
		}
		if f.Name == flagDBConnectTimeout {
			cfg.DBConnectTimeout, err = fs.GetDuration(f.Name)
		}
	})
	return err
}
