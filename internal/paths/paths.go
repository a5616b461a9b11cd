// Package paths resolves configuration and data file locations for the
// sift CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative default names.
const (
	DefaultConfigDirName = ".sift"
	DefaultDBName        = "sift.db"
)

// Environment variable names for overrides.
const (
	EnvConfigDir = "SIFT_CONFIG_DIR"
	EnvDBPath    = "SIFT_DB"
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
// Linux:   $XDG_CONFIG_HOME/sift (fallback ~/.config/sift)
// macOS:   ~/Library/Application Support/sift
// Windows: %APPDATA%/sift
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "sift"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "sift"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "sift"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SIFT_CONFIG_DIR env > $(CWD)/.sift if it
// exists > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return DefaultConfigDir()
}

// ResolveDBPath returns the SQLite database path following the precedence
// chain: flag > configYAMLValue > SIFT_DB env > $(CWD)/sift.db.
func ResolveDBPath(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDBName), nil
}
