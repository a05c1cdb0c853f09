package log

// NoopLogger discards every message. It is the default logger for library
// users who do not opt in to diagnostics.
type NoopLogger struct{}

var _ Logger = NoopLogger{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() NoopLogger { return NoopLogger{} }

func (NoopLogger) Debug(string, ...Field) {}
func (NoopLogger) Info(string, ...Field)  {}
func (NoopLogger) Warn(string, ...Field)  {}
func (NoopLogger) Error(string, ...Field) {}
