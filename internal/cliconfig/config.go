package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/logship/pkg/record"
)

// DefaultPort is the default ingest port of the remote server.
const DefaultPort = 8000

// Config holds CLI configuration for logship.
type Config struct {
	Host     string
	Port     int
	Stream   string
	Username string
	Password string
	MinLevel string

	InputPath string
	Follow    bool
	Channel   string

	MaxBatchRecords int
	FlushInterval   time.Duration
	RateLimit       int
	PollInterval    time.Duration
	HTTPTimeout     time.Duration

	StateDir      string
	MetricsListen string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:            DefaultPort,
		MinLevel:        "debug",
		MaxBatchRecords: 100,
		FlushInterval:   5 * time.Second,
		PollInterval:    500 * time.Millisecond,
		HTTPTimeout:     15 * time.Second,
		StateDir:        DefaultStateDir(),
		Password:        os.Getenv("LOGSHIP_PASSWORD"),
	}
}

// DefaultStateDir returns the default directory for the resume cursor.
// Returns ~/.logship if the user home directory is accessible.
func DefaultStateDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".logship")
	}
	return ""
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Stream == "" {
		return fmt.Errorf("stream is required")
	}

	// Ensure no trailing slash
	c.Host = strings.TrimRight(c.Host, "/")

	if _, err := record.ParseLevel(c.MinLevel); err != nil {
		return fmt.Errorf("min-level: %w", err)
	}

	if c.MaxBatchRecords <= 0 {
		return fmt.Errorf("max batch records must be positive")
	}
	if c.FlushInterval <= 0 {
		return fmt.Errorf("flush interval must be positive")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative")
	}

	if c.Channel == "" {
		c.Channel = c.Stream
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
