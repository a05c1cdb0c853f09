package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (LOGSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("LOGSHIP_HOST"), &cfg.Host)
	s.setString("stream", os.Getenv("LOGSHIP_STREAM"), &cfg.Stream)
	s.setString("username", os.Getenv("LOGSHIP_USERNAME"), &cfg.Username)
	s.setString("password", os.Getenv("LOGSHIP_PASSWORD"), &cfg.Password)
	s.setString("min-level", os.Getenv("LOGSHIP_MIN_LEVEL"), &cfg.MinLevel)
	s.setString("input", os.Getenv("LOGSHIP_INPUT"), &cfg.InputPath)
	s.setString("channel", os.Getenv("LOGSHIP_CHANNEL"), &cfg.Channel)
	s.setString("state-dir", os.Getenv("LOGSHIP_STATE_DIR"), &cfg.StateDir)
	s.setString("metrics-listen", os.Getenv("LOGSHIP_METRICS_LISTEN"), &cfg.MetricsListen)

	if err := s.setDuration("flush-interval", os.Getenv("LOGSHIP_FLUSH_INTERVAL"), &cfg.FlushInterval); err != nil {
		return err
	}
	if err := s.setDuration("poll", os.Getenv("LOGSHIP_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("LOGSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	if err := s.setIntFromString("port", os.Getenv("LOGSHIP_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("max-batch-records", os.Getenv("LOGSHIP_MAX_BATCH_RECORDS"), &cfg.MaxBatchRecords); err != nil {
		return err
	}
	if err := s.setIntFromString("rate-limit", os.Getenv("LOGSHIP_RATE_LIMIT"), &cfg.RateLimit); err != nil {
		return err
	}

	s.setBoolFromString("follow", os.Getenv("LOGSHIP_FOLLOW"), &cfg.Follow)

	return nil
}
