// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	if config.Watchdog.Timeout <= 0 {
		validationErrors = append(validationErrors, "watchdog.timeout must be a positive duration")
	}

	switch config.KeepAwake.Backend {
	case KeepAwakeAuto, KeepAwakePortal, KeepAwakeNone:
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("keep_awake.backend must be one of: auto, portal, none (got: %s)", config.KeepAwake.Backend))
	}

	if config.History.MaxSessions < 0 {
		validationErrors = append(validationErrors, "history.max_sessions must be non-negative")
	}

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}

	switch config.Logging.Format {
	case "console", "json":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
