// Package config provides XDG path helpers and TOML file configuration.
package config

import (
	"os"
	"path/filepath"
)

// localSaveFile is preferred when it already exists in the working
// directory, so a repo-local save keeps working across versions.
const localSaveFile = "save.json"

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

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "vimkata", "config.toml")
}

// DefaultJournalPath returns the default path for the attempt journal.
func DefaultJournalPath() string {
	return filepath.Join(XDGDataHome(), "vimkata", "journal.db")
}

// SavePath returns the progress save file path: a save.json in the current
// directory if one exists, else the per-user data directory.
func SavePath() string {
	if _, err := os.Stat(localSaveFile); err == nil {
		return localSaveFile
	}
	return filepath.Join(XDGDataHome(), "vimkata", localSaveFile)
}
