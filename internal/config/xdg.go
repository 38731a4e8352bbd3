// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "tuinote", "config.toml")
}

// DefaultPitchListDir returns the directory searched for custom pitch lists.
func DefaultPitchListDir() string {
	return filepath.Join(XDGConfigHome(), "tuinote", "pitches")
}

// ResolvePitchListPath expands a bare list name to a file in DefaultPitchListDir.
func ResolvePitchListPath(name string) string {
	if name == "" || filepath.IsAbs(name) || filepath.Ext(name) != "" || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(DefaultPitchListDir(), name+".txt")
}
