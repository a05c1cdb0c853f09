// Package logship provides a client for shipping log records to a
// stream-based ingestion server.
//
// Example usage:
//
//	cfg := logship.DefaultConfig()
//	cfg.Host = "https://logs.example.com"
//	cfg.Stream = "checkout"
//	cfg.Username = "svc-checkout"
//	cfg.Password = "api-key"
//	shipper, err := logship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := shipper.Handle(ctx, rec); err != nil {
//	    log.Printf("delivery failed: %v", err)
//	}
//
// This file re-exports the core types for convenient access. Import the
// sub-packages directly (pkg/logship, pkg/record, pkg/formatter,
// pkg/transport, pkg/log) for selective use.
package logship

import (
	core "github.com/bft-labs/logship/pkg/logship"
	"github.com/bft-labs/logship/pkg/record"
)

// Config holds the connection and filtering settings of a Shipper.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = core.Config

// Shipper delivers log records to a server stream.
type Shipper = core.Shipper

// Option configures optional behavior of a Shipper.
type Option = core.Option

// Record is a single log entry.
type Record = record.Record

// Level is the severity of a log record.
type Level = record.Level

// Severity levels, ordered from lowest to highest.
const (
	LevelDebug     = record.LevelDebug
	LevelInfo      = record.LevelInfo
	LevelNotice    = record.LevelNotice
	LevelWarning   = record.LevelWarning
	LevelError     = record.LevelError
	LevelCritical  = record.LevelCritical
	LevelAlert     = record.LevelAlert
	LevelEmergency = record.LevelEmergency
)

// IngestPath is appended to "{host}:{port}" to form the ingestion URL.
const IngestPath = core.IngestPath

// ErrInvalidConfig indicates the configuration failed validation.
var ErrInvalidConfig = core.ErrInvalidConfig

// New creates a Shipper with the given configuration.
func New(cfg Config, opts ...Option) (*Shipper, error) {
	return core.New(cfg, opts...)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, set Host and Stream before calling New.
func DefaultConfig() Config {
	return core.DefaultConfig()
}

// ParseLevel converts a level name such as "warning" to a Level.
func ParseLevel(name string) (Level, error) {
	return record.ParseLevel(name)
}
