package transport

import "context"

// Options carries implementation-specific delivery settings. The Send
// contract treats it as opaque; each implementation documents the keys it
// reads and ignores the rest. A nil Options is valid.
type Options map[string]string

// Transport performs one-shot payload deliveries.
//
// A call either succeeds, returning the raw response body, or fails with an
// error describing why. Transports do not retry, queue, or alter payloads.
type Transport interface {
	// Send posts body to url with the given headers.
	//
	// Each header is a "Name: value" string; entries without a colon are
	// ignored. The returned bytes are the response body, which callers are
	// free to discard.
	Send(ctx context.Context, url string, headers []string, body []byte, opts Options) ([]byte, error)
}
