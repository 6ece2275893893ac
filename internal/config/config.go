// Package config handles the XDG configuration directory and the settings
// file stored in it.
package config

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// YAMLFile is the settings filename checked first.
	YAMLFile = "config.yaml"

	// TOMLFile is the settings filename used when no YAML file exists.
	TOMLFile = "config.toml"

	// DatabaseFile is the default SQLite database filename.
	DatabaseFile = "tasks.db"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Latency forces simulated operation latency on.
	Latency bool

	// Remote is the URL of a `todo serve` instance, overriding remote.url.
	Remote string

	// Settings are read from the settings file and environment.
	Settings Settings

	// Logger is set by the dispatcher once settings are known.
	Logger *zap.Logger
}

// New creates a new Config with the default or specified config directory
// and loads its settings file.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	settings, err := LoadSettings(dir)
	if err != nil {
		return nil, err
	}
	return &Config{Dir: dir, Settings: settings}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Log returns the configured logger, or a no-op logger.
func (c *Config) Log() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// RemoteURL returns the remote server URL, if any. The --remote flag wins
// over the settings file.
func (c *Config) RemoteURL() string {
	if c.Remote != "" {
		return c.Remote
	}
	return c.Settings.Remote.URL
}

// LatencyEnabled reports whether mutations should be delayed.
func (c *Config) LatencyEnabled() bool {
	return c.Latency || c.Settings.Latency.Enabled
}

// StorageDSN returns the configured DSN, defaulting to a SQLite file in Dir.
func (c *Config) StorageDSN() string {
	if c.Settings.Storage.DSN != "" {
		return c.Settings.Storage.DSN
	}
	return filepath.Join(c.Dir, DatabaseFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
