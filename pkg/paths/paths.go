// Package paths provides centralized path handling for relay. It
// implements XDG Base Directory specification compliance for the
// config file and the log file.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for relay
	EnvConfigDir = "RELAY_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for relay
	EnvStateDir = "RELAY_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for relay-specific files
	AppDirName = "relay"

	// ConfigFileName is the name of the configuration file, without extension
	ConfigFileName = "relay"

	// LogFileName is the name of the log file
	LogFileName = "relay.log"
)

// ConfigDir returns the directory relay reads its config file from.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFileCandidates returns the config file paths relay considers,
// in priority order. The first one that exists wins.
func ConfigFileCandidates() []string {
	dir := ConfigDir()
	return []string{
		filepath.Join(dir, ConfigFileName+".toml"),
		filepath.Join(dir, ConfigFileName+".yaml"),
	}
}

// StateDir returns the directory relay writes runtime state into.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}
