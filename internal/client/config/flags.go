package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string     base URL of the auth backend
//	-d string     path of the local SQLite database
//	-t duration   per-request timeout, e.g. 5s
//	-l string     log level (debug, info, warn, error)
//	-log-dev      human-readable development logging
//
// Only these flags are picked out of args (see flagx.FilterArgs), so flags
// owned by other components do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l", "-log-dev"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "auth backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.LogDev, "log-dev", cfg.LogDev, "development logging")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
