// Package log provides the logging abstraction used by logship components.
//
// This package defines a Logger interface that can be implemented by any
// logging library. A zerolog-backed adapter and a no-op logger are provided.
// Shippers log through this interface only; applications that want logship
// diagnostics pass an adapter, everyone else gets the no-op default.
//
// # Usage
//
// Console diagnostics on stderr:
//
//	logger := log.NewZerologAdapter()
//
// Wrap an existing zerolog.Logger:
//
//	logger := log.NewZerologAdapterWithLogger(zl)
//
// Silence (the default inside the library):
//
//	logger := log.NewNoopLogger()
//
// # Custom Loggers
//
// Implement the Logger interface to integrate with existing logging
// infrastructure:
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
