package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// LocalShortcutsFile is looked up in the working directory before the global file
	LocalShortcutsFile = ".keydeck.yaml"
)

var (
	// ConfigDir is the global configuration directory (~/.keydeck)
	ConfigDir string

	// ShortcutsFile is the user's shortcut overrides and custom shortcuts
	ShortcutsFile string

	// DatabasePath is the SQLite database file for shortcut usage
	DatabasePath string

	// LogDir is the default diagnostics directory
	LogDir string
)

// Initialize sets up the configuration directories
// It creates ~/.keydeck/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".keydeck"))
}

// InitializeAt sets the global paths under dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	ShortcutsFile = filepath.Join(ConfigDir, "shortcuts.yaml")
	DatabasePath = filepath.Join(ConfigDir, "keydeck.db")
	LogDir = filepath.Join(ConfigDir, "logs")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// GetShortcutsFilePath returns the shortcut file to load: an explicit path
// wins, then a local .keydeck.yaml, then the global file
func GetShortcutsFilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(LocalShortcutsFile); err == nil {
		return LocalShortcutsFile
	}
	return ShortcutsFile
}
