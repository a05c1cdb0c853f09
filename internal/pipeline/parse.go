package pipeline

import (
	"fmt"
	"time"

	"github.com/valyala/fastjson"

	"github.com/bft-labs/logship/pkg/record"
)

// Parser converts NDJSON input lines into records.
//
// Recognized fields: "datetime" (RFC 3339 string) or "timestamp" (unix
// seconds or nanoseconds), "level", "channel", "message" (with "msg" as
// fallback), "context" and "extra" objects. Missing timestamps default to
// now, missing levels to info, missing channels to the configured default.
// A line that is not a JSON object or carries an unknown level name is
// rejected.
type Parser struct {
	pool fastjson.ParserPool

	// channel stamped on records that do not carry one
	defaultChannel string
}

// NewParser creates a Parser that stamps defaultChannel on records
// without a channel of their own.
func NewParser(defaultChannel string) *Parser {
	return &Parser{defaultChannel: defaultChannel}
}

// Parse converts one input line into a record.
func (pr *Parser) Parse(line []byte) (record.Record, error) {
	p := pr.pool.Get()
	defer pr.pool.Put(p)

	v, err := p.ParseBytes(line)
	if err != nil {
		return record.Record{}, fmt.Errorf("parse line: %w", err)
	}
	if v.Type() != fastjson.TypeObject {
		return record.Record{}, fmt.Errorf("line is %s, want a JSON object", v.Type())
	}

	rec := record.Record{
		Time:    parseTime(v),
		Channel: string(v.GetStringBytes("channel")),
		Message: string(v.GetStringBytes("message")),
		Context: objectMap(v, "context"),
		Extra:   objectMap(v, "extra"),
	}
	if rec.Channel == "" {
		rec.Channel = pr.defaultChannel
	}
	if rec.Message == "" {
		rec.Message = string(v.GetStringBytes("msg"))
	}

	rec.Level = record.LevelInfo
	if levelStr := v.GetStringBytes("level"); len(levelStr) > 0 {
		lvl, err := record.ParseLevel(string(levelStr))
		if err != nil {
			return record.Record{}, err
		}
		rec.Level = lvl
	}

	return rec, nil
}

// Timestamps at or above this are taken as nanoseconds; below, seconds.
const nanosThreshold = int64(1e12)

func parseTime(v *fastjson.Value) time.Time {
	if dt := v.GetStringBytes("datetime"); len(dt) > 0 {
		if t, err := time.Parse(time.RFC3339Nano, string(dt)); err == nil {
			return t.UTC()
		}
	}
	if ts := v.GetInt64("timestamp"); ts != 0 {
		if ts < nanosThreshold {
			return time.Unix(ts, 0).UTC()
		}
		return time.Unix(0, ts).UTC()
	}
	return time.Now().UTC()
}

func objectMap(v *fastjson.Value, key string) map[string]any {
	obj := v.GetObject(key)
	if obj == nil {
		return nil
	}
	m := make(map[string]any, obj.Len())
	obj.Visit(func(k []byte, val *fastjson.Value) {
		m[string(k)] = valueToAny(val)
	})
	return m
}

// valueToAny copies a fastjson value into plain Go types, mirroring what
// encoding/json produces (numbers become float64).
func valueToAny(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		m := make(map[string]any, obj.Len())
		obj.Visit(func(k []byte, val *fastjson.Value) {
			m[string(k)] = valueToAny(val)
		})
		return m
	case fastjson.TypeArray:
		arr, _ := v.Array()
		out := make([]any, len(arr))
		for i, val := range arr {
			out[i] = valueToAny(val)
		}
		return out
	case fastjson.TypeString:
		b, _ := v.StringBytes()
		return string(b)
	case fastjson.TypeNumber:
		f, _ := v.Float64()
		return f
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}
