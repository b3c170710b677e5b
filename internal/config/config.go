package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
)

const configRelPath = "focustrack/config.json"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `json:"database"`
	Tracker  TrackerConfig  `json:"tracker"`
	Focus    FocusConfig    `json:"focus"`
	Daemon   DaemonConfig   `json:"daemon"`
	Web      WebConfig      `json:"web"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Path string `json:"path"` // empty means the default XDG data path
}

// TrackerConfig holds tracking behavior configuration.
type TrackerConfig struct {
	PollInterval    time.Duration `json:"poll_interval"`
	MinPollInterval time.Duration `json:"min_poll_interval"`
	MaxPollInterval time.Duration `json:"max_poll_interval"`
	TrackTitles     bool          `json:"track_titles"`
}

// FocusConfig holds focus-session configuration.
type FocusConfig struct {
	DefaultDuration time.Duration `json:"default_duration"`
	AutoStart       bool          `json:"auto_start"`
	MusicDir        string        `json:"music_dir,omitempty"`
}

// DaemonConfig holds daemon process configuration.
type DaemonConfig struct {
	PIDFile string `json:"pid_file"`
	LogFile string `json:"log_file"`
}

// WebConfig holds web server configuration.
type WebConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "",
		},
		Tracker: TrackerConfig{
			PollInterval:    10 * time.Second,
			MinPollInterval: 1 * time.Second,
			MaxPollInterval: 300 * time.Second,
			TrackTitles:     true,
		},
		Focus: FocusConfig{
			DefaultDuration: 25 * time.Minute, // Pomodoro default
			AutoStart:       false,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("%s/focustrack-%d.pid", os.TempDir(), os.Getuid()),
			LogFile: fmt.Sprintf("%s/focustrack-%d.log", os.TempDir(), os.Getuid()),
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 7600,
		},
	}
}

// Load reads the JSON config file from the XDG config dir, falling back to
// defaults when none exists, and applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := xdg.SearchConfigFile(configRelPath)
	if err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	LoadFromEnv(cfg)
	return cfg, nil
}

// Save writes the config as JSON under the XDG config dir.
func (c *Config) Save() error {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return errors.Wrap(err, "failed to resolve config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write config file")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Tracker.PollInterval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Tracker.PollInterval, c.Tracker.MinPollInterval)
	}

	if c.Tracker.PollInterval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Tracker.PollInterval, c.Tracker.MaxPollInterval)
	}

	if c.Focus.DefaultDuration <= 0 {
		return fmt.Errorf("default focus duration must be positive, got %v", c.Focus.DefaultDuration)
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetPollInterval sets the poll interval with validation.
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Tracker.MinPollInterval)
	}
	if interval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Tracker.MaxPollInterval)
	}
	c.Tracker.PollInterval = interval
	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Tracker:
    Poll Interval: %v
    Min Interval: %v
    Max Interval: %v
    Track Titles: %v
  Focus:
    Default Duration: %v
    Auto Start: %v
  Daemon:
    PID File: %s
    Log File: %s
  Web:
    Host: %s
    Port: %d`,
		c.Database.Path,
		c.Tracker.PollInterval,
		c.Tracker.MinPollInterval,
		c.Tracker.MaxPollInterval,
		c.Tracker.TrackTitles,
		c.Focus.DefaultDuration,
		c.Focus.AutoStart,
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Web.Host,
		c.Web.Port,
	)
}
