package domain

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when a run is started without a username or token.
var ErrMissingCredentials = errors.New("username and token must both be set")

// StatusError is a non-success HTTP status returned by the remote API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("github: unexpected status %d: %s", e.StatusCode, e.Message)
}

// TransportError means the network layer could not complete a request.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError means repository listing was rejected, so there is nothing to investigate.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("listing repositories failed with status %d: %v", e.StatusCode, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var aErr *AuthError
	return errors.As(err, &aErr)
}
