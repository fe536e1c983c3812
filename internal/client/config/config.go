package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the auth client.
//
// Fields:
//   - ServerURL: base URL of the auth backend (scheme://host[:port]).
//   - DatabasePath: SQLite file holding the persisted access token.
//   - RequestTimeout: upper bound for a single backend call.
//   - LogLevel / LogDev: zap logger level and development mode.
type Config struct {
	ServerURL      string        `env:"GOPHAUTH_SERVER_URL"`
	DatabasePath   string        `env:"GOPHAUTH_DB"`
	RequestTimeout time.Duration `env:"GOPHAUTH_REQUEST_TIMEOUT"`
	LogLevel       string        `env:"GOPHAUTH_LOG_LEVEL"`
	LogDev         bool          `env:"GOPHAUTH_LOG_DEV"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DatabasePath = "auth.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogDev = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
