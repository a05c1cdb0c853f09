// Package formatter turns log records into payload bytes for delivery.
//
// The Formatter interface separates the wire shape from the delivery
// mechanics: a shipper calls Format or FormatBatch and sends the returned
// bytes without inspecting them. JSONFormatter is the default
// implementation and produces flat single-line JSON objects (one per
// record, batches as a JSON array).
//
// # Usage
//
//	f := formatter.NewJSONFormatter()
//	payload, err := f.Format(rec)
//
// # Custom Formatters
//
// Implement the Formatter interface to produce alternative shapes
// (e.g. logfmt lines or a different field layout). The shipper delivers
// whatever bytes the formatter returns.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package formatter
