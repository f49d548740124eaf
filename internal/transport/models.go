package transport

import (
	"fmt"
	"time"
)

// RawResponse is the opaque payload of a successful request: body, status and
// fetch time. It lives only until the decoder has consumed the body; nothing
// retains it across pipeline runs.
type RawResponse struct {
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}

// Failure is the transport-level failure variant: DNS errors, refused
// connections, timeouts and non-2xx statuses all end up here. StatusCode is
// zero unless the failure came from an HTTP status.
type Failure struct {
	Message    string
	StatusCode int
}

// Error makes *Failure usable where an error is expected.
func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("status %d: %s", f.StatusCode, f.Message)
	}
	return f.Message
}

// Failuref builds a Failure from a format string.
func Failuref(format string, args ...any) *Failure {
	return &Failure{Message: fmt.Sprintf(format, args...)}
}
