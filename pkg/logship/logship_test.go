package logship

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/bft-labs/logship/pkg/record"
	"github.com/bft-labs/logship/pkg/transport"
)

// recordingTransport captures every Send call and returns a canned result.
type recordingTransport struct {
	calls []sendCall
	err   error
	resp  []byte
}

type sendCall struct {
	url     string
	headers []string
	body    []byte
	opts    transport.Options
}

func (t *recordingTransport) Send(_ context.Context, url string, headers []string, body []byte, opts transport.Options) ([]byte, error) {
	t.calls = append(t.calls, sendCall{
		url:     url,
		headers: append([]string(nil), headers...),
		body:    append([]byte(nil), body...),
		opts:    opts,
	})
	if t.err != nil {
		return nil, t.err
	}
	return t.resp, nil
}

// recordingFormatter captures its inputs and returns a fixed payload.
type recordingFormatter struct {
	singles []record.Record
	batches [][]record.Record
	payload []byte
}

func (f *recordingFormatter) Format(rec record.Record) ([]byte, error) {
	f.singles = append(f.singles, rec)
	return f.payload, nil
}

func (f *recordingFormatter) FormatBatch(recs []record.Record) ([]byte, error) {
	f.batches = append(f.batches, append([]record.Record(nil), recs...))
	return f.payload, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Host = "https://logs.example.com"
	cfg.Stream = "app-stream"
	cfg.Username = "u"
	cfg.Password = "p"
	return cfg
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing stream", mutate: func(c *Config) { c.Stream = "" }},
		{name: "level below range", mutate: func(c *Config) { c.MinLevel = record.Level(-3) }},
		{name: "level above range", mutate: func(c *Config) { c.MinLevel = record.Level(12) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			_, err := New(cfg)
			if err == nil {
				t.Fatal("New() expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestShipperEndpoint(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{
			name: "plain host",
			host: "https://logs.example.com",
			port: 8000,
			want: "https://logs.example.com:8000/api/v1/ingest",
		},
		{
			name: "trailing slash stripped",
			host: "https://logs.example.com/",
			port: 8000,
			want: "https://logs.example.com:8000/api/v1/ingest",
		},
		{
			name: "multiple trailing slashes stripped",
			host: "https://logs.example.com///",
			port: 8000,
			want: "https://logs.example.com:8000/api/v1/ingest",
		},
		{
			name: "http and custom port",
			host: "http://localhost",
			port: 9001,
			want: "http://localhost:9001/api/v1/ingest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Host = tt.host
			cfg.Port = tt.port

			s, err := New(cfg, WithTransport(&recordingTransport{}))
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if got := s.Endpoint(); got != tt.want {
				t.Errorf("Endpoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShipperHeaders(t *testing.T) {
	tr := &recordingTransport{}

	s, err := New(testConfig(), WithTransport(tr))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	rec := record.Record{Level: record.LevelError, Message: "boom", Time: time.Now()}
	if err := s.Handle(context.Background(), rec); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	if len(tr.calls) != 1 {
		t.Fatalf("transport called %d times, want 1", len(tr.calls))
	}

	want := []string{
		"Content-Type: application/json",
		"X-P-Stream: app-stream",
		"Authorization: Basic dTpw",
	}
	got := tr.calls[0].headers
	if len(got) != len(want) {
		t.Fatalf("headers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHandleBatchFiltersAndPreservesOrder(t *testing.T) {
	tr := &recordingTransport{}
	f := &recordingFormatter{payload: []byte(`[]`)}

	cfg := testConfig()
	cfg.MinLevel = record.LevelInfo

	s, err := New(cfg, WithTransport(tr), WithFormatter(f))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	recs := []record.Record{
		{Level: record.LevelDebug, Message: "skipped"},
		{Level: record.LevelInfo, Message: "kept-1"},
		{Level: record.LevelDebug, Message: "also skipped"},
		{Level: record.LevelError, Message: "kept-2"},
	}

	if err := s.HandleBatch(context.Background(), recs); err != nil {
		t.Fatalf("HandleBatch() error: %v", err)
	}

	if len(f.batches) != 1 {
		t.Fatalf("formatter called %d times, want 1", len(f.batches))
	}
	kept := f.batches[0]
	if len(kept) != 2 || kept[0].Message != "kept-1" || kept[1].Message != "kept-2" {
		t.Errorf("formatter received %v, want kept-1 then kept-2", kept)
	}

	if len(tr.calls) != 1 {
		t.Fatalf("transport called %d times, want 1", len(tr.calls))
	}
	if string(tr.calls[0].body) != `[]` {
		t.Errorf("delivered body = %q, want the formatter's exact output", tr.calls[0].body)
	}

	// Input slice is untouched.
	if recs[0].Message != "skipped" || len(recs) != 4 {
		t.Error("HandleBatch modified the caller's slice")
	}
}

func TestHandleBatchAllFiltered(t *testing.T) {
	tr := &recordingTransport{}
	f := &recordingFormatter{}

	cfg := testConfig()
	cfg.MinLevel = record.LevelInfo

	s, err := New(cfg, WithTransport(tr), WithFormatter(f))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	err = s.HandleBatch(context.Background(), []record.Record{
		{Level: record.LevelDebug, Message: "below"},
	})
	if err != nil {
		t.Fatalf("HandleBatch() error: %v", err)
	}

	if len(f.batches) != 0 || len(f.singles) != 0 {
		t.Error("formatter should not run for a fully filtered batch")
	}
	if len(tr.calls) != 0 {
		t.Error("transport should not run for a fully filtered batch")
	}
}

func TestHandleBatchEmptyInput(t *testing.T) {
	tr := &recordingTransport{}
	f := &recordingFormatter{}

	s, err := New(testConfig(), WithTransport(tr), WithFormatter(f))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := s.HandleBatch(context.Background(), nil); err != nil {
		t.Fatalf("HandleBatch(nil) error: %v", err)
	}
	if len(f.batches) != 0 || len(tr.calls) != 0 {
		t.Error("empty batch should produce no formatting and no delivery")
	}
}

func TestHandleAppliesMinLevel(t *testing.T) {
	tr := &recordingTransport{}
	f := &recordingFormatter{payload: []byte(`{}`)}

	cfg := testConfig()
	cfg.MinLevel = record.LevelInfo

	s, err := New(cfg, WithTransport(tr), WithFormatter(f))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := s.Handle(context.Background(), record.Record{Level: record.LevelDebug}); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if len(f.singles) != 0 || len(tr.calls) != 0 {
		t.Error("below-minimum record should be discarded silently")
	}

	if err := s.Handle(context.Background(), record.Record{Level: record.LevelInfo}); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if len(f.singles) != 1 || len(tr.calls) != 1 {
		t.Errorf("at-minimum record should be delivered, formatter=%d transport=%d",
			len(f.singles), len(tr.calls))
	}
	if string(tr.calls[0].body) != `{}` {
		t.Errorf("delivered body = %q, want the formatter's exact output", tr.calls[0].body)
	}
}

func TestTransportErrorsPropagateUnchanged(t *testing.T) {
	want := &transport.Error{URL: "https://logs.example.com:8000/api/v1/ingest", StatusCode: 403, Body: "forbidden"}
	tr := &recordingTransport{err: want}

	s, err := New(testConfig(), WithTransport(tr))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got := s.Handle(context.Background(), record.Record{Level: record.LevelError})
	if got != error(want) {
		t.Errorf("Handle() error = %v (%T), want the transport error unchanged", got, got)
	}

	got = s.HandleBatch(context.Background(), []record.Record{{Level: record.LevelError}})
	if got != error(want) {
		t.Errorf("HandleBatch() error = %v (%T), want the transport error unchanged", got, got)
	}
}

func TestShipperBubble(t *testing.T) {
	s, err := New(testConfig(), WithTransport(&recordingTransport{}))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !s.Bubble() {
		t.Error("DefaultConfig should bubble")
	}

	cfg := testConfig()
	cfg.Bubble = false
	s, err = New(cfg, WithTransport(&recordingTransport{}))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.Bubble() {
		t.Error("Bubble() = true, want false")
	}
}

func TestShipperEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.MinLevel = record.LevelWarning

	s, err := New(cfg, WithTransport(&recordingTransport{}))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		lvl  record.Level
		want bool
	}{
		{record.LevelDebug, false},
		{record.LevelInfo, false},
		{record.LevelNotice, false},
		{record.LevelWarning, true},
		{record.LevelError, true},
		{record.LevelEmergency, true},
	}
	for _, tt := range tests {
		if got := s.Enabled(tt.lvl); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.lvl, got, tt.want)
		}
	}
}

func TestWithTransportOptions(t *testing.T) {
	tr := &recordingTransport{}
	opts := transport.Options{"timeout": "2s", "trace": "on"}

	s, err := New(testConfig(), WithTransport(tr), WithTransportOptions(opts))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := s.Handle(context.Background(), record.Record{Level: record.LevelError}); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	if len(tr.calls) != 1 {
		t.Fatalf("transport called %d times, want 1", len(tr.calls))
	}
	got := tr.calls[0].opts
	if got["timeout"] != "2s" || got["trace"] != "on" {
		t.Errorf("transport received opts %v, want %v", got, opts)
	}
}

func TestShipperEndToEnd(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotHeader http.Header
		gotBody   []byte
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotHeader = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse test server url: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse test server port: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Host = u.Scheme + "://" + u.Hostname()
	cfg.Port = port
	cfg.Stream = "orders"
	cfg.Username = "svc"
	cfg.Password = "secret"
	cfg.MinLevel = record.LevelInfo

	s, err := New(cfg, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	recs := []record.Record{
		{Level: record.LevelDebug, Message: "dropped", Time: time.Now()},
		{Level: record.LevelInfo, Channel: "orders", Message: "created", Time: time.Now()},
		{Level: record.LevelError, Channel: "orders", Message: "failed", Time: time.Now()},
	}
	if err := s.HandleBatch(context.Background(), recs); err != nil {
		t.Fatalf("HandleBatch() error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != IngestPath {
		t.Errorf("path = %s, want %s", gotPath, IngestPath)
	}
	if got := gotHeader.Get("X-P-Stream"); got != "orders" {
		t.Errorf("X-P-Stream = %q, want orders", got)
	}
	if got := gotHeader.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if got := gotHeader.Get("Authorization"); got != "Basic c3ZjOnNlY3JldA==" {
		t.Errorf("Authorization = %q, want Basic c3ZjOnNlY3JldA==", got)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body is not a JSON array: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("body carries %d records, want 2 (debug filtered)", len(decoded))
	}
	if decoded[0]["message"] != "created" || decoded[1]["message"] != "failed" {
		t.Errorf("body order = %v, want created then failed", decoded)
	}
}
