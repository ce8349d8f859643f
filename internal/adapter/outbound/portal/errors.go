package portal

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnauthorized is returned when the portal rejects the bearer
	// token (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnreachable is returned when the portal cannot be contacted.
	ErrUnreachable = errors.New("portal unreachable")
)

// APIError is returned when the portal answers with a non-2xx status.
// It carries the status and the raw response body so callers can show
// the server's message verbatim.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Body is the raw response body.
	Body string
	// RequestID is the X-Request-ID that was sent with the request.
	RequestID string
}

// Error returns a human-readable description of the API failure.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("portal returned %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("portal returned %d", e.Status)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrUnauthorized) for 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// RejectionMessage returns the server's response body for verbatim
// display to the user.
func (e *APIError) RejectionMessage() string {
	return e.Body
}

// TransportError is returned when the request never produced an HTTP
// response: DNS failure, connection refused, TLS handshake, timeout.
type TransportError struct {
	// Cause is the underlying error.
	Cause error
}

// Error returns a human-readable description of the transport failure.
func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("portal unreachable: %v", e.Cause)
	}
	return "portal unreachable"
}

// Unwrap returns the underlying error cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrUnreachable).
func (e *TransportError) Is(target error) bool {
	return target == ErrUnreachable
}
