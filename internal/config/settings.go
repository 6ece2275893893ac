package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"todo/internal/executor"
)

// ErrInvalid is returned for unreadable or out-of-range settings.
var ErrInvalid = errors.New("invalid configuration")

// Settings is the content of the settings file.
type Settings struct {
	Storage StorageSettings `yaml:"storage" toml:"storage"`
	Latency LatencySettings `yaml:"latency" toml:"latency"`
	Server  ServerSettings  `yaml:"server" toml:"server"`
	Remote  RemoteSettings  `yaml:"remote" toml:"remote"`
	Log     LogSettings     `yaml:"log" toml:"log"`
}

// StorageSettings selects the repository.
type StorageSettings struct {
	Driver string `yaml:"driver" toml:"driver"` // sqlite, mysql or memory
	DSN    string `yaml:"dsn" toml:"dsn"`
}

// LatencySettings configures simulated operation latency.
type LatencySettings struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
	// Delays overrides the default delay per operation, e.g. add: "250ms".
	Delays map[string]string `yaml:"delays" toml:"delays"`
}

// ServerSettings configures `todo serve`.
type ServerSettings struct {
	Addr            string `yaml:"addr" toml:"addr"`
	Token           string `yaml:"token" toml:"token"`
	ShutdownTimeout string `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// RemoteSettings points the CLI at a running server.
type RemoteSettings struct {
	URL   string `yaml:"url" toml:"url"`
	Token string `yaml:"token" toml:"token"`
	// Timeout bounds each request; raise it above the server's latency.delays.
	Timeout string `yaml:"timeout" toml:"timeout"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // console or json
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{Driver: "sqlite"},
		Server: ServerSettings{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},
		Remote: RemoteSettings{
			Timeout: "5s",
		},
		Log: LogSettings{
			Level:  "warn",
			Format: "console",
		},
	}
}

// LoadSettings reads config.yaml or config.toml from dir, applies
// environment overrides and validates the result. A missing file yields
// the defaults.
func LoadSettings(dir string) (Settings, error) {
	s := DefaultSettings()

	yamlPath := filepath.Join(dir, YAMLFile)
	tomlPath := filepath.Join(dir, TOMLFile)

	data, err := os.ReadFile(yamlPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalid, yamlPath, err)
		}
	case os.IsNotExist(err):
		if _, err := toml.DecodeFile(tomlPath, &s); err != nil && !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalid, tomlPath, err)
		}
	default:
		return Settings{}, fmt.Errorf("failed to read config: %w", err)
	}

	s.applyEnvOverrides()

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// applyEnvOverrides applies environment variable overrides.
func (s *Settings) applyEnvOverrides() {
	if v := os.Getenv("TODO_STORAGE_DRIVER"); v != "" {
		s.Storage.Driver = v
	}
	if v := os.Getenv("TODO_STORAGE_DSN"); v != "" {
		s.Storage.DSN = v
	}
	if v := os.Getenv("TODO_REMOTE_URL"); v != "" {
		s.Remote.URL = v
	}
	if v := os.Getenv("TODO_REMOTE_TOKEN"); v != "" {
		s.Remote.Token = v
	}
	if v := os.Getenv("TODO_SERVER_TOKEN"); v != "" {
		s.Server.Token = v
	}
}

// Validate checks every enumerated and duration setting.
func (s Settings) Validate() error {
	switch s.Storage.Driver {
	case "sqlite", "mysql", "memory":
	default:
		return fmt.Errorf("%w: storage.driver: %q", ErrInvalid, s.Storage.Driver)
	}
	if s.Storage.Driver == "mysql" && s.Storage.DSN == "" {
		return fmt.Errorf("%w: storage.dsn is required for mysql", ErrInvalid)
	}
	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: %q", ErrInvalid, s.Log.Level)
	}
	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format: %q", ErrInvalid, s.Log.Format)
	}
	if _, err := parseDuration("server.shutdown_timeout", s.Server.ShutdownTimeout); err != nil {
		return err
	}
	if _, err := parseDuration("remote.timeout", s.Remote.Timeout); err != nil {
		return err
	}
	if _, err := s.Latency.delays(); err != nil {
		return err
	}
	return nil
}

// ShutdownTimeoutDuration returns server.shutdown_timeout as a duration.
func (s ServerSettings) ShutdownTimeoutDuration() time.Duration {
	d, err := parseDuration("server.shutdown_timeout", s.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// TimeoutDuration returns remote.timeout as a duration.
func (r RemoteSettings) TimeoutDuration() time.Duration {
	d, err := parseDuration("remote.timeout", r.Timeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// DelayMap returns the default delays with configured overrides applied.
func (l LatencySettings) DelayMap() map[executor.Op]time.Duration {
	d, err := l.delays()
	if err != nil {
		return executor.DefaultDelays()
	}
	return d
}

func (l LatencySettings) delays() (map[executor.Op]time.Duration, error) {
	out := executor.DefaultDelays()
	for name, v := range l.Delays {
		op := executor.Op(name)
		if _, ok := out[op]; !ok {
			return nil, fmt.Errorf("%w: latency.delays: unknown operation %q", ErrInvalid, name)
		}
		d, err := parseDuration("latency.delays."+name, v)
		if err != nil {
			return nil, err
		}
		out[op] = d
	}
	return out, nil
}

func parseDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %s: %q", ErrInvalid, key, v)
	}
	return d, nil
}
