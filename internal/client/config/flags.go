package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig             = "config"
	flagServerURL          = "server"
	flagDatabasePath       = "db"
	flagRequestTimeout     = "timeout"
	flagUserID             = "user"
	flagAccessToken        = "token"
	flagLogLevel           = "log-level"
	flagLogFormat          = "log-format"
	flagEncryptionDisabled = "no-encryption"
)

// RegisterFlags declares the configuration flags on fs with the defaults as
// their default values.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to a JSON config file")
	fs.StringP(flagServerURL, "a", d.ServerURL, "journal server base URL")
	fs.String(flagDatabasePath, d.DatabasePath, "path of the local SQLite database")
	fs.Duration(flagRequestTimeout, d.RequestTimeout, "HTTP request timeout")
	fs.StringP(flagUserID, "u", d.UserID, "signed-in user id")
	fs.StringP(flagAccessToken, "t", d.AccessToken, "bearer token of the session")
	fs.String(flagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.String(flagLogFormat, d.LogFormat, "log format (text, json)")
	fs.Bool(flagEncryptionDisabled, d.EncryptionDisabled, "run without a crypto provider")
}

// applyFlags copies every flag that was set on the command line into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case flagServerURL:
			cfg.ServerURL, err = fs.GetString(f.Name)
		case flagDatabasePath:
			cfg.DatabasePath, err = fs.GetString(f.Name)
		case flagRequestTimeout:
			cfg.RequestTimeout, err = fs.GetDuration(f.Name)
		case flagUserID:
			cfg.UserID, err = fs.GetString(f.Name)
		case flagAccessToken:
			cfg.AccessToken, err = fs.GetString(f.Name)
		case flagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case flagLogFormat:
			cfg.LogFormat, err = fs.GetString(f.Name)
		case flagEncryptionDisabled:
			cfg.EncryptionDisabled, err = fs.GetBool(f.Name)
		}
	})
	return err
}
