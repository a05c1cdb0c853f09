package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Stream          string `toml:"stream"`
	Username        string `toml:"username"`
	Password        string `toml:"password"`
	MinLevel        string `toml:"min_level"`
	Input           string `toml:"input"`
	Follow          *bool  `toml:"follow"`
	Channel         string `toml:"channel"`
	MaxBatchRecords int    `toml:"max_batch_records"`
	FlushInterval   string `toml:"flush_interval"`
	RateLimit       int    `toml:"rate_limit"`
	PollInterval    string `toml:"poll_interval"`
	HTTPTimeout     string `toml:"http_timeout"`
	StateDir        string `toml:"state_dir"`
	MetricsListen   string `toml:"metrics_listen"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.logship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".logship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setString("stream", fc.Stream, &cfg.Stream)
	s.setString("username", fc.Username, &cfg.Username)
	s.setString("password", fc.Password, &cfg.Password)
	s.setString("min-level", fc.MinLevel, &cfg.MinLevel)
	s.setString("input", fc.Input, &cfg.InputPath)
	s.setString("channel", fc.Channel, &cfg.Channel)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("metrics-listen", fc.MetricsListen, &cfg.MetricsListen)

	if err := s.setDuration("flush-interval", fc.FlushInterval, &cfg.FlushInterval); err != nil {
		return err
	}
	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setInt("port", fc.Port, &cfg.Port)
	s.setInt("max-batch-records", fc.MaxBatchRecords, &cfg.MaxBatchRecords)
	s.setInt("rate-limit", fc.RateLimit, &cfg.RateLimit)

	s.setBool("follow", fc.Follow, &cfg.Follow)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
