package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required setting (endpoint, result key) is missing.
	ErrNotConfigured = errors.New("not configured")

	// ErrUnavailable indicates the environment cannot perform network or window access,
	// e.g. during static pre-rendering.
	ErrUnavailable = errors.New("unavailable in this environment")

	// Fetch errors. Every failure at the fetch boundary is one of these three.

	// ErrNetworkFailure indicates the request could not be sent or the connection failed.
	ErrNetworkFailure = errors.New("network failure")

	// ErrBadResponse indicates the backend answered with a non-2xx status.
	ErrBadResponse = errors.New("bad response")

	// ErrMalformedBody indicates the body was not valid JSON or lacked the expected keys.
	ErrMalformedBody = errors.New("malformed body")
)

// Error kinds used for logging and telemetry.
const (
	KindNetwork       = "network"
	KindBadResponse   = "bad_response"
	KindMalformedBody = "malformed_body"
	KindUnavailable   = "unavailable"
	KindOther         = "other"
)

// FetchError describes a failed backend request.
// It unwraps to its kind sentinel, so errors.Is(err, ErrBadResponse) holds.
type FetchError struct {
	// Kind is one of ErrNetworkFailure, ErrBadResponse or ErrMalformedBody.
	Kind error

	// Status is the HTTP status code, 0 when no response was received.
	Status int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%v: status %d: %v", e.Kind, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%v: status %d", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return fmt.Sprint(e.Kind)
	}
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ErrorKind maps an error to its kind for logging. Nil maps to "".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetworkFailure):
		return KindNetwork
	case errors.Is(err, ErrBadResponse):
		return KindBadResponse
	case errors.Is(err, ErrMalformedBody):
		return KindMalformedBody
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	default:
		return KindOther
	}
}
