// Package logship provides a log record shipper for stream-based ingestion
// servers.
//
// A Shipper owns one stream's connection settings (host, port, stream name,
// Basic auth credentials) and delivers formatted records to
// "{host}:{port}/api/v1/ingest" with one HTTP POST per handled record or
// batch. There is no queuing, retrying, or connection management; a Shipper
// does exactly one delivery attempt and reports the outcome.
//
// # Basic Usage
//
//	cfg := logship.DefaultConfig()
//	cfg.Host = "https://logs.example.com"
//	cfg.Stream = "checkout"
//	cfg.Username = "svc-checkout"
//	cfg.Password = os.Getenv("LOGSHIP_PASSWORD")
//	cfg.MinLevel = record.LevelInfo
//
//	shipper, err := logship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = shipper.Handle(ctx, record.Record{
//	    Channel: "checkout",
//	    Level:   record.LevelError,
//	    Message: "payment declined",
//	    Time:    time.Now(),
//	})
//
// # Level Filtering
//
// Records below [Config.MinLevel] are discarded before any formatting or
// network activity. HandleBatch applies the same rule per record and keeps
// the survivors in their original order; a fully filtered batch sends
// nothing at all.
//
// # Dependency Injection
//
// Collaborators are replaceable via options:
//
//	shipper, err := logship.New(cfg,
//	    logship.WithTransport(customTransport),
//	    logship.WithFormatter(customFormatter),
//	    logship.WithLogger(logger),
//	)
//
// WithHTTPClient swaps the HTTP client under the default transport, which
// is the usual seam for tests.
//
// # Errors
//
// Configuration problems surface from New wrapping [ErrInvalidConfig].
// Delivery problems surface from Handle and HandleBatch as the transport's
// own error values, unchanged; with the default transport that is
// *transport.Error.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package logship
