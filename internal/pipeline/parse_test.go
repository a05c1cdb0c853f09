package pipeline

import (
	"testing"
	"time"

	"github.com/bft-labs/logship/pkg/record"
)

func TestParserFullRecord(t *testing.T) {
	p := NewParser("app")

	line := []byte(`{"datetime":"2026-03-14T09:26:53.5Z","channel":"checkout","level":"error",` +
		`"message":"payment declined","context":{"order_id":4221,"amounts":[1.5,2],"retried":false,"note":null},` +
		`"extra":{"host":"web-1"}}`)

	rec, err := p.Parse(line)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if rec.Channel != "checkout" {
		t.Errorf("Channel = %q, want checkout", rec.Channel)
	}
	if rec.Level != record.LevelError {
		t.Errorf("Level = %v, want LevelError", rec.Level)
	}
	if rec.Message != "payment declined" {
		t.Errorf("Message = %q", rec.Message)
	}

	want := time.Date(2026, 3, 14, 9, 26, 53, 500000000, time.UTC)
	if !rec.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", rec.Time, want)
	}

	if got := rec.Context["order_id"]; got != float64(4221) {
		t.Errorf("context order_id = %v (%T), want 4221 as float64", got, got)
	}
	amounts, ok := rec.Context["amounts"].([]any)
	if !ok || len(amounts) != 2 || amounts[0] != 1.5 {
		t.Errorf("context amounts = %v, want [1.5 2]", rec.Context["amounts"])
	}
	if got := rec.Context["retried"]; got != false {
		t.Errorf("context retried = %v, want false", got)
	}
	if got, present := rec.Context["note"]; !present || got != nil {
		t.Errorf("context note = %v, want present nil", got)
	}
	if got := rec.Extra["host"]; got != "web-1" {
		t.Errorf("extra host = %v, want web-1", got)
	}
}

func TestParserTimestampNanos(t *testing.T) {
	p := NewParser("app")

	rec, err := p.Parse([]byte(`{"timestamp":1300000000500000000,"message":"tick"}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := time.Unix(1300000000, 500000000).UTC()
	if !rec.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", rec.Time, want)
	}
}

func TestParserTimestampSeconds(t *testing.T) {
	p := NewParser("app")

	rec, err := p.Parse([]byte(`{"timestamp":1300000000,"message":"tick"}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := time.Unix(1300000000, 0).UTC()
	if !rec.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", rec.Time, want)
	}
}

func TestParserDefaults(t *testing.T) {
	p := NewParser("app")

	before := time.Now()
	rec, err := p.Parse([]byte(`{"msg":"fallback message"}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if rec.Level != record.LevelInfo {
		t.Errorf("Level = %v, want LevelInfo default", rec.Level)
	}
	if rec.Channel != "app" {
		t.Errorf("Channel = %q, want stamped default", rec.Channel)
	}
	if rec.Message != "fallback message" {
		t.Errorf("Message = %q, want msg field fallback", rec.Message)
	}
	if rec.Time.Before(before.Add(-time.Second)) || rec.Time.After(time.Now().Add(time.Second)) {
		t.Errorf("Time = %v, want roughly now", rec.Time)
	}
	if rec.Context != nil || rec.Extra != nil {
		t.Error("absent context/extra should stay nil")
	}
}

func TestParserKeepsExplicitChannel(t *testing.T) {
	p := NewParser("app")

	rec, err := p.Parse([]byte(`{"channel":"billing","message":"x"}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if rec.Channel != "billing" {
		t.Errorf("Channel = %q, want billing", rec.Channel)
	}
}

func TestParserRejectsBadInput(t *testing.T) {
	p := NewParser("app")

	tests := []struct {
		name string
		line string
	}{
		{name: "malformed json", line: `{"message": "unterminated`},
		{name: "array line", line: `[{"message":"x"}]`},
		{name: "scalar line", line: `"just a string"`},
		{name: "unknown level", line: `{"level":"verbose","message":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Parse([]byte(tt.line)); err == nil {
				t.Errorf("Parse(%s) expected error", tt.line)
			}
		})
	}
}

func TestParserBadDatetimeFallsBack(t *testing.T) {
	p := NewParser("app")

	rec, err := p.Parse([]byte(`{"datetime":"yesterday","message":"x"}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if time.Since(rec.Time) > time.Minute {
		t.Errorf("unparseable datetime should fall back to now, got %v", rec.Time)
	}
}
