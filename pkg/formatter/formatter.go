package formatter

import "github.com/bft-labs/logship/pkg/record"

// Formatter renders records into the payload bytes a shipper delivers.
// Implementations own the wire shape; shippers treat the output as opaque.
type Formatter interface {
	// Format renders a single record.
	Format(rec record.Record) ([]byte, error)

	// FormatBatch renders records into one payload, preserving order.
	// It is never called with an empty slice.
	FormatBatch(recs []record.Record) ([]byte, error)
}
