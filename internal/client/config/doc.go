// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config.
//  3. Command-line flags that were set explicitly, which override earlier values.
//
// # JSON schema
//
// request_timeout uses timex.Duration, so it can be either a string like
// "10s" or integer nanoseconds. Absent keys keep their default:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "database_path": "journal.db",
//	  "request_timeout": "10s",
//	  "user_id": "user-1",
//	  "access_token": "eyJ...",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "encryption_disabled": false
//	}
package config
