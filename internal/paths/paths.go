// Package paths resolves the configuration directory and the directory CSV
// exports are written to.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name under the platform config root.
const appName = "fleetops"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "FLEETOPS_CONFIG_DIR"
	EnvExportDir = "FLEETOPS_EXPORT_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/fleetops (fallback ~/.config/fleetops)
// macOS:   ~/Library/Application Support/fleetops
// Windows: %APPDATA%/fleetops
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > FLEETOPS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveExportDir returns where CSV exports land when no output file is
// given: flag > configYAMLValue > FLEETOPS_EXPORT_DIR env > current directory.
func ResolveExportDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvExportDir); env != "" {
		return filepath.Abs(env)
	}
	return os.Getwd()
}
