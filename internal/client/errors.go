package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrUnauthorized indicates the API refused the key (HTTP 401)
	ErrUnauthorized = errors.New("could not connect: the connection was refused (HTTP 401)")
	// ErrInvalidParams indicates endpoint parameters failed validation
	ErrInvalidParams = errors.New("invalid parameters")
)

// APIError is returned for any non-200 status other than 401
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("could not connect to %s: HTTP status code %d", e.Endpoint, e.StatusCode)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Retryable reports whether the request may succeed if repeated
func (e *APIError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// ParamError describes one invalid endpoint parameter
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidParams
func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}

func paramErr(param, format string, args ...any) error {
	return &ParamError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
