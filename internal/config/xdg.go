package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "timeout-override"
	databaseName = "sessions.sqlite"
)

// xdgDir resolves one XDG base directory: $envVar/timeout-override when the
// variable is set, otherwise home-relative fallback. ENV=dev redirects both
// directories into ./.dev for development runs.
func xdgDir(envVar string, fallback ...string) (string, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, ".dev", appName), nil
	}

	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName), nil
}

// GetConfigDir returns the configuration directory,
// $XDG_CONFIG_HOME/timeout-override by default.
func GetConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetDataDir returns the data directory,
// $XDG_DATA_HOME/timeout-override by default.
func GetDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// GetDatabaseFile returns the wake-session history database path.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// EnsureDirectories creates the config and data directories if missing.
func EnsureDirectories() error {
	for _, get := range []func() (string, error){GetConfigDir, GetDataDir} {
		dir, err := get()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
