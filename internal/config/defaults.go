// Package config provides default configuration values for timeout-override.
package config

import "time"

// Default configuration constants
const (
	// Watchdog defaults
	defaultTimeoutSec = 20 // seconds the surface stays awake after a touch

	// History defaults
	defaultMaxSessions = 1000 // retained wake-session records
)

// DefaultConfig returns the default configuration values for timeout-override.
func DefaultConfig() *Config {
	return &Config{
		Watchdog: WatchdogConfig{
			Timeout: time.Second * defaultTimeoutSec,
		},
		KeepAwake: KeepAwakeConfig{
			Backend: KeepAwakeAuto,
		},
		History: HistoryConfig{
			Enabled:     true,
			MaxSessions: defaultMaxSessions,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// setDefaults registers the default values with viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("watchdog.timeout", defaults.Watchdog.Timeout)
	m.viper.SetDefault("keep_awake.backend", string(defaults.KeepAwake.Backend))
	m.viper.SetDefault("history.enabled", defaults.History.Enabled)
	m.viper.SetDefault("history.max_sessions", defaults.History.MaxSessions)
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
