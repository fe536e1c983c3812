// Package config loads runtime configuration for the auth client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. GOPHAUTH_* environment variables.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Durations may be strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "database_path": "auth.db",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_dev": false
//	}
package config
