// Package config provides configuration management for timeout-override with
// Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0o755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0o644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for timeout-override.
type Config struct {
	Watchdog  WatchdogConfig  `mapstructure:"watchdog" yaml:"watchdog"`
	KeepAwake KeepAwakeConfig `mapstructure:"keep_awake" yaml:"keep_awake"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// WatchdogConfig holds the countdown settings. The poll granularity is an
// implementation constant of the watchdog package, deliberately not exposed
// here.
type WatchdogConfig struct {
	// Timeout is how long the surface stays awake after the last touch.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// KeepAwakeBackend selects how the keep-awake flag reaches the system.
type KeepAwakeBackend string

const (
	// KeepAwakeAuto probes for a working backend at startup.
	KeepAwakeAuto KeepAwakeBackend = "auto"
	// KeepAwakePortal uses the XDG Desktop Portal inhibit API over D-Bus.
	KeepAwakePortal KeepAwakeBackend = "portal"
	// KeepAwakeNone keeps the flag purely in-process (useful for testing).
	KeepAwakeNone KeepAwakeBackend = "none"
)

// KeepAwakeConfig holds keep-awake backend selection.
type KeepAwakeConfig struct {
	Backend KeepAwakeBackend `mapstructure:"backend" yaml:"backend"`
}

// HistoryConfig holds wake-session history settings.
type HistoryConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	Path        string `mapstructure:"path" yaml:"path"`
	MaxSessions int    `mapstructure:"max_sessions" yaml:"max_sessions"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Configure Viper - supports yaml, json, toml automatically
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// Set up environment variable support
	v.SetEnvPrefix("TIMEOUT_OVERRIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"watchdog.timeout":     "WATCHDOG_TIMEOUT",
		"keep_awake.backend":   "KEEP_AWAKE_BACKEND",
		"history.enabled":      "HISTORY_ENABLED",
		"history.path":         "HISTORY_PATH",
		"history.max_sessions": "HISTORY_MAX_SESSIONS",
		"logging.level":        "LOG_LEVEL",
		"logging.format":       "LOG_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "TIMEOUT_OVERRIDE_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// ConfigFile returns the path of the config file in use, or "" when running
// on defaults and environment variables only.
func (m *Manager) ConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	// Read config file if it exists
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create default one
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set history database path if not specified
	if config.History.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.History.Path = dbPath
	}

	// Normalize keep-awake backend
	switch KeepAwakeBackend(strings.ToLower(string(config.KeepAwake.Backend))) {
	case KeepAwakePortal:
		config.KeepAwake.Backend = KeepAwakePortal
	case KeepAwakeNone:
		config.KeepAwake.Backend = KeepAwakeNone
	default:
		config.KeepAwake.Backend = KeepAwakeAuto
	}

	if err := validateConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil // Already watching
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload reloads the configuration.
func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

// WriteDefaultConfig writes the default config file and its JSON schema if no
// config file exists yet. Existing files are never overwritten.
func (m *Manager) WriteDefaultConfig() error {
	return m.createDefaultConfig()
}

// createDefaultConfig writes the default configuration to disk and generates
// the matching JSON schema next to it.
func (m *Manager) createDefaultConfig() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.viper.SafeWriteConfig(); err != nil {
		var alreadyExists viper.ConfigFileAlreadyExistsError
		if !errors.As(err, &alreadyExists) {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	if err := GenerateSchemaFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to generate config schema: %v\n", err)
	}

	return nil
}
