// Package fs provides file-system locations and a disk cache for model
// responses.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "veritas"

// DefaultCacheDir returns the default cache directory for veritas.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/veritas,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// DefaultConfigDir returns the directory holding settings.toml.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/veritas.
func DefaultConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the directory holding the analysis history.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share/veritas.
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) string {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, fallback, appName)
}
