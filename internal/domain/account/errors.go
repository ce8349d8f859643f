package account

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidCredentials is returned when the portal rejects the
	// login credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProfileFetchFailed is returned when a token was issued but the
	// follow-up profile fetch failed. The token has been discarded; the
	// caller retries the whole login from scratch.
	ErrProfileFetchFailed = errors.New("profile fetch failed")

	// ErrRegistrationRejected is returned when the portal rejects a
	// registration (e.g. duplicate user ID).
	ErrRegistrationRejected = errors.New("registration rejected")

	// ErrMissingCourse is returned when a registration is submitted
	// without a training course selection.
	ErrMissingCourse = errors.New("training course selection required")

	// ErrSubmissionInFlight is returned when a login or registration is
	// attempted while another one is still running.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// AuthError is returned when the portal rejected an auth request or a
// post-token step failed. Message carries the server's words for
// display; Cause keeps the underlying transport or API error.
type AuthError struct {
	// Reason is one of ErrInvalidCredentials, ErrProfileFetchFailed,
	// ErrRegistrationRejected.
	Reason error
	// Message is the user-displayable text, server-provided when available.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns a human-readable description of the auth failure.
func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v: %s", e.Reason, e.Message)
	}
	return e.Reason.Error()
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrInvalidCredentials) and friends.
func (e *AuthError) Is(target error) bool {
	return target == e.Reason
}

// Unwrap returns the underlying error cause.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// ValidationError is a locally detected input error. It never reaches
// the network.
type ValidationError struct {
	// Field is the offending input field.
	Field string
	// Tag is the validation rule that failed (validator/v10 tag).
	Tag string
}

// Error returns a human-readable description of the validation failure.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s failed validation: %s", e.Field, e.Tag)
}

// Is reports whether this error matches the target error. A missing
// training selection matches ErrMissingCourse.
func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingCourse && e.Field == "TrainingID"
}

// rejection is implemented by transport errors that carry a server
// message suitable for verbatim display (the portal client's APIError).
type rejection interface {
	error
	RejectionMessage() string
}

// serverMessage extracts a displayable message from an error chain, or
// returns the empty string.
func serverMessage(err error) string {
	var rej rejection
	if errors.As(err, &rej) {
		return rej.RejectionMessage()
	}
	return ""
}
