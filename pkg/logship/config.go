package logship

import (
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/logship/pkg/record"
)

// IngestPath is appended to "{host}:{port}" to form the ingestion URL.
const IngestPath = "/api/v1/ingest"

// DefaultPort is the ingest port used by DefaultConfig.
const DefaultPort = 8000

// DefaultHTTPTimeout bounds each delivery when no custom HTTP client or
// transport is supplied.
const DefaultHTTPTimeout = 15 * time.Second

// Config holds the connection and filtering settings of a Shipper.
//
// The zero value keeps Bubble false; start from DefaultConfig() for
// handler-chain-friendly defaults.
type Config struct {
	// Host is the server base URL including scheme, e.g.
	// "https://logs.example.com". Trailing slashes are stripped during
	// validation. The value is not otherwise checked; a malformed host
	// produces a malformed endpoint and surfaces at delivery time.
	Host string

	// Port is the ingest port, appended to Host verbatim.
	Port int

	// Stream is the target stream name, sent as the X-P-Stream header.
	Stream string

	// Username and Password form the Basic auth credentials. Both may be
	// empty when the server does not authenticate.
	Username string
	Password string

	// MinLevel is the minimum severity a record needs to be shipped.
	// Records below it are discarded without formatting or network use.
	MinLevel record.Level

	// Bubble reports whether records should continue to later handlers
	// in a chain after this shipper handled them.
	Bubble bool

	// HTTPTimeout bounds each delivery performed by the default
	// transport. Ignored when WithTransport or WithHTTPClient is used.
	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config with usable defaults. Host, Stream and
// credentials must still be filled in.
func DefaultConfig() Config {
	return Config{
		Port:        DefaultPort,
		MinLevel:    record.LevelDebug,
		Bubble:      true,
		HTTPTimeout: DefaultHTTPTimeout,
	}
}

// SetDefaults fills unset fields that have usable defaults.
func (c *Config) SetDefaults() {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
}

// Validate normalizes the host and checks the settings that cannot be
// deferred to delivery time. Returned errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	c.Host = strings.TrimRight(c.Host, "/")

	if c.Stream == "" {
		return fmt.Errorf("%w: stream is required", ErrInvalidConfig)
	}
	if !c.MinLevel.Valid() {
		return fmt.Errorf("%w: unknown minimum level %d", ErrInvalidConfig, int(c.MinLevel))
	}
	return nil
}
