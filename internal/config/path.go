// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the per-user config and state directories.
const AppName = "voiq"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// ConfigDir returns $XDG_CONFIG_HOME/voiq, falling back to ~/.config/voiq.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/voiq, falling back to ~/.local/state/voiq.
// The database, identity cache and TUI log live here.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// DefaultDatabasePath is where the SQLite backends keep their file.
func DefaultDatabasePath() string {
	return filepath.Join(StateDir(), "voiq.db")
}

// DefaultCachePath is where the identity cache is written.
func DefaultCachePath() string {
	return filepath.Join(StateDir(), "cache.yaml")
}

// DefaultLogPath receives logs while the full-screen dashboard owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "voiq.log")
}

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(ExpandPath(base), AppName)
	}
	return filepath.Join(ExpandPath("~"), fallback, AppName)
}
