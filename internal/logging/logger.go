// Package logging provides zerolog-based structured logging for
// timeout-override.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults: info level, human-readable console
// output on stderr.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a logger with the given configuration. Unknown formats fall
// back to zerolog's native JSON.
func New(cfg Config) zerolog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}

// ParseLevel maps a config/env level string to a zerolog level, defaulting
// to info for anything unrecognized.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewFromEnv creates a logger from TIMEOUT_OVERRIDE_LOG_LEVEL (trace, debug,
// info, warn, error) and TIMEOUT_OVERRIDE_LOG_FORMAT (json, console). It is
// the bootstrap logger used before the config file is loaded.
func NewFromEnv() zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(os.Getenv("TIMEOUT_OVERRIDE_LOG_LEVEL"))
	if format := os.Getenv("TIMEOUT_OVERRIDE_LOG_FORMAT"); format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}
