// Package errs defines the sentinel errors shared across the panel.
package errs

import "errors"

// Authentication errors
var (
	// ErrNotAuthenticated is returned when a proxy call is attempted
	// without a session token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAuthFailed is returned when the backend rejects the session token.
	ErrAuthFailed = errors.New("auth failed")
)

// Gateway errors
var (
	// ErrBackendUnreachable is returned when the backend cannot be reached
	// (connection refused, DNS failure, timeout).
	ErrBackendUnreachable = errors.New("backend unreachable")

	// ErrBadBackendResponse is returned when the backend body cannot be
	// parsed as the expected JSON envelope.
	ErrBadBackendResponse = errors.New("unexpected backend response")
)

// Configuration errors
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("invalid configuration")
)
