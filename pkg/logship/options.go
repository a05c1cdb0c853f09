package logship

import (
	"net/http"

	"github.com/bft-labs/logship/pkg/formatter"
	"github.com/bft-labs/logship/pkg/log"
	"github.com/bft-labs/logship/pkg/transport"
)

// Option configures optional behavior of a Shipper.
type Option func(*options)

// options holds the optional collaborators of a Shipper.
type options struct {
	httpClient       transport.HTTPClient
	transport        transport.Transport
	formatter        formatter.Formatter
	logger           log.Logger
	transportOptions transport.Options
}

// defaultOptions returns options with sensible defaults.
func defaultOptions(client *http.Client) options {
	return options{
		httpClient: client,
		formatter:  formatter.NewJSONFormatter(),
		logger:     log.NewNoopLogger(),
	}
}

// WithHTTPClient sets the HTTP client used by the default transport.
// Has no effect when WithTransport is also given.
func WithHTTPClient(client transport.HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTransport replaces the delivery mechanism entirely.
func WithTransport(t transport.Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithFormatter replaces the default JSON formatter.
func WithFormatter(f formatter.Formatter) Option {
	return func(o *options) {
		o.formatter = f
	}
}

// WithLogger sets a custom logger for shipper diagnostics.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTransportOptions sets the opaque options handed to the transport on
// every delivery. Keys are transport-specific; see transport.OptionTimeout.
func WithTransportOptions(opts transport.Options) Option {
	return func(o *options) {
		o.transportOptions = opts
	}
}
