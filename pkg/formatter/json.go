package formatter

import (
	"encoding/json"
	"time"

	"github.com/bft-labs/logship/pkg/record"
)

// JSONFormatter renders records as flat JSON objects suitable for ingestion
// APIs that index individual fields.
//
// A single record becomes one object on a single line; a batch becomes a
// JSON array of such objects. Timestamps are normalized to UTC RFC 3339.
// Empty Context and Extra maps are omitted entirely.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonRecord struct {
	Datetime string         `json:"datetime"`
	Channel  string         `json:"channel"`
	Level    string         `json:"level"`
	Message  string         `json:"message"`
	Context  map[string]any `json:"context,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

func toJSONRecord(rec record.Record) jsonRecord {
	return jsonRecord{
		Datetime: rec.Time.UTC().Format(time.RFC3339Nano),
		Channel:  rec.Channel,
		Level:    rec.Level.String(),
		Message:  rec.Message,
		Context:  rec.Context,
		Extra:    rec.Extra,
	}
}

// Format renders rec as a single JSON object.
func (f *JSONFormatter) Format(rec record.Record) ([]byte, error) {
	return json.Marshal(toJSONRecord(rec))
}

// FormatBatch renders recs as a JSON array, preserving order.
func (f *JSONFormatter) FormatBatch(recs []record.Record) ([]byte, error) {
	out := make([]jsonRecord, len(recs))
	for i, rec := range recs {
		out[i] = toJSONRecord(rec)
	}
	return json.Marshal(out)
}
