package logship

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/bft-labs/logship/pkg/formatter"
	"github.com/bft-labs/logship/pkg/log"
	"github.com/bft-labs/logship/pkg/record"
	"github.com/bft-labs/logship/pkg/transport"
)

// Shipper delivers log records to a server stream.
// Use New() to create an instance; the endpoint and auth headers are
// computed once there. A Shipper is immutable afterwards and safe for
// concurrent use as long as its transport is.
type Shipper struct {
	config    Config
	formatter formatter.Formatter
	transport transport.Transport
	logger    log.Logger

	endpoint string
	headers  []string
	tropts   transport.Options
}

// New creates a Shipper with the given configuration.
// Returns an error wrapping ErrInvalidConfig if the configuration is
// unusable.
func New(cfg Config, opts ...Option) (*Shipper, error) {
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	o := defaultOptions(httpClient)
	for _, opt := range opts {
		opt(&o)
	}

	tr := o.transport
	if tr == nil {
		tr = transport.NewHTTPTransport(o.httpClient, o.logger)
	}

	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))

	return &Shipper{
		config:    cfg,
		formatter: o.formatter,
		transport: tr,
		logger:    o.logger,
		endpoint:  fmt.Sprintf("%s:%d%s", cfg.Host, cfg.Port, IngestPath),
		headers: []string{
			"Content-Type: application/json",
			"X-P-Stream: " + cfg.Stream,
			"Authorization: Basic " + creds,
		},
		tropts: o.transportOptions,
	}, nil
}

// Handle formats and delivers a single record.
// Records below the minimum level are discarded without formatting or
// network activity; that is a success, not an error.
func (s *Shipper) Handle(ctx context.Context, rec record.Record) error {
	if !s.Enabled(rec.Level) {
		return nil
	}

	payload, err := s.formatter.Format(rec)
	if err != nil {
		return fmt.Errorf("logship: format record: %w", err)
	}

	return s.deliver(ctx, payload, 1)
}

// HandleBatch filters recs by the minimum level, formats the survivors in
// their original order and delivers them as one payload.
// A batch with nothing above the minimum level is a no-op: the formatter
// is not invoked and nothing goes over the wire. The input slice is never
// modified.
func (s *Shipper) HandleBatch(ctx context.Context, recs []record.Record) error {
	kept := make([]record.Record, 0, len(recs))
	for _, rec := range recs {
		if s.Enabled(rec.Level) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	payload, err := s.formatter.FormatBatch(kept)
	if err != nil {
		return fmt.Errorf("logship: format batch: %w", err)
	}

	return s.deliver(ctx, payload, len(kept))
}

// deliver posts payload to the ingest endpoint. The response body is
// discarded; transport failures are returned to the caller unchanged.
func (s *Shipper) deliver(ctx context.Context, payload []byte, count int) error {
	if _, err := s.transport.Send(ctx, s.endpoint, s.headers, payload, s.tropts); err != nil {
		return err
	}

	s.logger.Debug("records delivered",
		log.Int("count", count),
		log.Int("bytes", len(payload)),
		log.String("stream", s.config.Stream))

	return nil
}

// Enabled reports whether records at lvl pass the minimum-level filter.
// Callers composing handler chains can use it to skip work early.
func (s *Shipper) Enabled(lvl record.Level) bool {
	return lvl >= s.config.MinLevel
}

// Bubble reports whether records should propagate to later handlers in a
// chain after this shipper handled them.
func (s *Shipper) Bubble() bool {
	return s.config.Bubble
}

// Endpoint returns the full ingestion URL records are delivered to.
func (s *Shipper) Endpoint() string {
	return s.endpoint
}

// MinLevel returns the configured minimum severity.
func (s *Shipper) MinLevel() record.Level {
	return s.config.MinLevel
}

// Stream returns the target stream name.
func (s *Shipper) Stream() string {
	return s.config.Stream
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"record":    {record.Version, record.MinCompatibleVersion},
		"formatter": {formatter.Version, formatter.MinCompatibleVersion},
		"transport": {transport.Version, transport.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
