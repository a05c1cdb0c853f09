// Package transport defines the one-shot delivery contract and its HTTP
// implementation.
//
// A Transport takes a fully built request (url, "Name: value" header
// strings, payload bytes, an opaque Options bag) and performs exactly one
// delivery attempt. There is no retrying, queuing, or connection
// management in this layer; callers that want those behaviors compose them
// around a Transport.
//
// # Usage
//
// Create an HTTP transport:
//
//	tr := transport.NewHTTPTransport(&http.Client{Timeout: 15 * time.Second}, logger)
//
//	respBody, err := tr.Send(ctx, url, []string{
//	    "Content-Type: application/json",
//	}, payload, nil)
//
// Failures are reported as *transport.Error. Use errors.As to inspect the
// status code or the underlying cause:
//
//	var terr *transport.Error
//	if errors.As(err, &terr) && terr.StatusCode == http.StatusForbidden {
//	    // credentials rejected
//	}
//
// # Custom Transports
//
// Implement the Transport interface to deliver by other means (e.g. a unix
// socket, a test recorder). Implementations document which Options keys
// they read; HTTPTransport reads OptionTimeout.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package transport
