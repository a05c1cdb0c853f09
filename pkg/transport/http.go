package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bft-labs/logship/pkg/log"
)

// OptionTimeout is the Options key read by HTTPTransport: a Go duration
// string (e.g. "5s") that caps the round trip of a single Send. Values
// that do not parse are ignored.
const OptionTimeout = "timeout"

// Response bodies longer than this are truncated in error messages.
const maxErrorBody = 512

// HTTPTransport implements Transport with a plain HTTP POST per Send.
type HTTPTransport struct {
	client HTTPClient
	logger log.Logger
}

// NewHTTPTransport creates a new HTTP transport.
func NewHTTPTransport(client HTTPClient, logger log.Logger) *HTTPTransport {
	return &HTTPTransport{
		client: client,
		logger: logger,
	}
}

// Send posts body to url and returns the response body.
// Failures of any kind are reported as *Error.
func (t *HTTPTransport) Send(ctx context.Context, url string, headers []string, body []byte, opts Options) ([]byte, error) {
	if raw, ok := opts[OptionTimeout]; ok {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		req.Header.Set(name, strings.TrimSpace(value))
	}

	t.logger.Debug("posting payload",
		log.String("url", url),
		log.Int("bytes", len(body)))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode/100 != 2 {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Body: truncateBody(respBody)}
	}

	return respBody, nil
}

func truncateBody(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
