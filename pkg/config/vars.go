package config

import (
	"path/filepath"
)

const (
	// AppName is used in generating file system paths.
	AppName = "macrofitas"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/macrofitas by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/macrofitas by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/macrofitas/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// DataDir returns the directory for local application data such as
// the fetch journal.
// Returns ~/.local/share/macrofitas by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/macrofitas/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the sources.yaml file.
// Returns ~/.config/macrofitas/sources.yaml by default.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}

// JournalFilePath returns the path to the SQLite fetch journal.
func JournalFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "journal.sqlite")
}
