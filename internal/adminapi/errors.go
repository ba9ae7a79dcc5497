package adminapi

import (
	"errors"
	"fmt"
)

// APIError is a logical failure reported by the server as {ok:false, error}.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rejected by server", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TransportError covers everything that prevented a usable answer: network
// failures, unexpected status codes and undecodable bodies.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: http %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerMessage returns the server-provided message of err, if err carries
// one.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}
