// Package config holds runtime options and per-OS locations for filer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "filer"

	DefaultPreviewMaxDimension = 512
	DefaultDeleteConcurrency   = 4
)

// Config collects the options the CLI passes to the application.
type Config struct {
	StartPath           string
	SettingsPath        string
	LogPath             string
	Debug               bool
	NoPersist           bool
	PreviewMaxDimension int
	DeleteConcurrency   int
}

// Default returns a Config rooted at the user's home directory.
func Default() Config {
	start, err := os.UserHomeDir()
	if err != nil {
		start, _ = os.Getwd()
	}
	return Config{
		StartPath:           start,
		SettingsPath:        filepath.Join(ConfigDirectory(), "settings.db"),
		LogPath:             filepath.Join(LogDirectory(), "filer.log"),
		PreviewMaxDimension: DefaultPreviewMaxDimension,
		DeleteConcurrency:   DefaultDeleteConcurrency,
	}
}

// Validate normalises StartPath to an absolute path and checks numeric bounds.
func (c *Config) Validate() error {
	if c.StartPath == "" {
		return errors.New("start path is empty")
	}
	abs, err := filepath.Abs(c.StartPath)
	if err != nil {
		return fmt.Errorf("resolve start path: %w", err)
	}
	c.StartPath = abs

	if c.PreviewMaxDimension < 0 {
		return fmt.Errorf("preview size must not be negative, got %d", c.PreviewMaxDimension)
	}
	if c.DeleteConcurrency < 1 {
		return fmt.Errorf("delete concurrency must be at least 1, got %d", c.DeleteConcurrency)
	}
	if !c.NoPersist && c.SettingsPath == "" {
		return errors.New("settings path is empty")
	}
	return nil
}

// ConfigDirectory returns where settings are stored.
//
// Locations:
//   - Windows: %APPDATA%\filer
//   - macOS: ~/Library/Application Support/filer
//   - Unix: $XDG_CONFIG_HOME/filer or ~/.config/filer
func ConfigDirectory() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appName)
		}
		return filepath.Join(home, ".config", appName)
	}
	return filepath.Join(dir, appName)
}

// LogDirectory returns where the terminal UI writes its log.
func LogDirectory() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return filepath.Join(ConfigDirectory(), "logs")
		}
		return filepath.Join(localAppData, appName, "logs")
	}

	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(ConfigDirectory(), "logs")
	}
	return filepath.Join(dir, appName, "logs")
}
