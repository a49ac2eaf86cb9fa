// Package api implements the HTTP client for the mianshi backend.
//
// This file contains the error taxonomy surfaced by the request layer.
package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthenticated is returned when a protected endpoint is called
// without a stored token. The request never reaches the network.
var ErrUnauthenticated = errors.New("not logged in")

// NetworkError indicates a transport-level failure: the request was sent
// (or attempted) but no usable response came back.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError checks if an error is a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// HTTPError indicates a non-2xx response. Msg carries the envelope message
// when the server provided one, otherwise a generic text with the status.
type HTTPError struct {
	Status int
	Msg    string
}

func (e *HTTPError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("http error: status %d", e.Status)
}

// APIError indicates a well-formed response whose envelope code is not the
// success sentinel. Code and Msg come from the server unchanged.
type APIError struct {
	Code int64
	Msg  string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api error %d: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("api error %d", e.Code)
}

// IsCode reports whether err is an APIError carrying the given code.
func IsCode(err error, code int64) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// ValidationError indicates input rejected locally before any network call.
type ValidationError struct {
	Msg     string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s", e.Msg, strings.Join(e.Details, "; "))
	}
	return e.Msg
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
