package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv applies environment-variable overrides on top of cfg.
func LoadFromEnv(cfg *Config) {
	if dbPath := os.Getenv("FOCUSTRACK_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if pollInterval := os.Getenv("FOCUSTRACK_POLL_INTERVAL"); pollInterval != "" {
		if seconds, err := strconv.Atoi(pollInterval); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Tracker.MinPollInterval && interval <= cfg.Tracker.MaxPollInterval {
				cfg.Tracker.PollInterval = interval
			}
		}
	}

	if trackTitles := os.Getenv("FOCUSTRACK_TRACK_TITLES"); trackTitles != "" {
		if val, err := strconv.ParseBool(trackTitles); err == nil {
			cfg.Tracker.TrackTitles = val
		}
	}

	if focusDuration := os.Getenv("FOCUSTRACK_FOCUS_DURATION"); focusDuration != "" {
		if minutes, err := strconv.Atoi(focusDuration); err == nil && minutes > 0 {
			cfg.Focus.DefaultDuration = time.Duration(minutes) * time.Minute
		}
	}

	if pidFile := os.Getenv("FOCUSTRACK_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if logFile := os.Getenv("FOCUSTRACK_LOG_FILE"); logFile != "" {
		cfg.Daemon.LogFile = logFile
	}

	if webHost := os.Getenv("FOCUSTRACK_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("FOCUSTRACK_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// New creates a new Config with default values and environment overrides,
// without touching the config file.
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
