// Package record defines the log record model shared by formatters,
// shippers and the tailing pipeline.
//
// A Record carries a channel, a severity Level, a message, a timestamp and
// two structured-data maps (Context and Extra). The eight levels follow the
// syslog ordering, LevelDebug through LevelEmergency.
//
// # Usage
//
// Build records directly:
//
//	rec := record.Record{
//	    Channel: "app",
//	    Level:   record.LevelError,
//	    Message: "payment failed",
//	    Time:    time.Now().UTC(),
//	    Context: map[string]any{"order_id": 4221},
//	}
//
// Parse a level name from configuration:
//
//	lvl, err := record.ParseLevel("warning")
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package record
