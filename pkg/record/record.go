package record

import "time"

// Record is a single log entry as produced by an application logger.
//
// Records are value types; shippers and formatters never mutate them or the
// slices they arrive in.
type Record struct {
	// Channel is the logical source of the record (the logger name).
	Channel string

	// Level is the record severity.
	Level Level

	// Message is the log line itself.
	Message string

	// Time is when the record was created.
	Time time.Time

	// Context holds structured data attached when the record was logged.
	Context map[string]any

	// Extra holds structured data attached by processors afterwards.
	Extra map[string]any
}
