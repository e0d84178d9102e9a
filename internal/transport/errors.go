package transport

import "fmt"

// ClientError is the only error type that crosses the transport boundary.
// Status is the HTTP status code of a non-success response, or 0 when the
// request never produced a response (network failure, encoding failure).
// Message carries the response body text or the underlying error text.
type ClientError struct {
	Status  int
	Message string
}

func (e *ClientError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Remote reports whether the service itself answered with a failure, as
// opposed to the request not completing at all.
func (e *ClientError) Remote() bool {
	return e.Status != 0
}
