package transport

import "fmt"

// Error describes a failed delivery attempt.
//
// Err is set when the request never produced an HTTP response (connection
// refused, timeout, malformed URL). StatusCode is set when the server
// answered outside the 2xx range, with Body holding a snippet of the
// response.
type Error struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport: post %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("transport: post %s: server returned %d: %s", e.URL, e.StatusCode, e.Body)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }
