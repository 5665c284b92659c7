package gateway

import (
	"encoding/json"
	"fmt"

	"audiomonpanel/pkg/errs"
)

// Backend sentinel values that signal token invalidation. The backend
// is known to emit "Auth failed1" from its audio list route; that
// spelling is recognized only when the caller opts in, since it is an
// unverified backend quirk that may be fixed upstream.
const (
	AuthFailedSentinel       = "Auth failed"
	LegacyAuthFailedSentinel = "Auth failed1"
)

// Kind tags a backend JSON response.
type Kind int

const (
	// Ok is a data response, regardless of HTTP status.
	Ok Kind = iota

	// AuthFailed means the backend rejected the token; the caller must
	// treat the session as revoked.
	AuthFailed

	// ValidationError is any non-sentinel error envelope.
	ValidationError
)

// Result is a classified backend JSON response. Transport failures are
// never represented here; they surface as errors from the client.
type Result struct {
	Kind    Kind
	Status  int             // backend HTTP status
	Payload json.RawMessage // body as received from the backend
	Message string          // error envelope message, empty for Ok
}

type callOptions struct {
	legacyAuthSentinel bool
}

// CallOption adjusts how a backend response is classified.
type CallOption func(*callOptions)

// WithLegacyAuthSentinel also recognizes "Auth failed1" as an auth
// failure. Used by the audio list endpoint only.
func WithLegacyAuthSentinel() CallOption {
	return func(o *callOptions) {
		o.legacyAuthSentinel = true
	}
}

// errEnvelope is the backend's uniform error shape.
type errEnvelope struct {
	Error string `json:"error"`
}

// Classify parses a backend JSON body into a Result. Non-2xx statuses
// are expected to carry the error envelope rather than to fail here.
func Classify(status int, body []byte, opts ...CallOption) (*Result, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: status %d, body is not JSON", errs.ErrBadBackendResponse, status)
	}

	result := &Result{
		Kind:    Ok,
		Status:  status,
		Payload: json.RawMessage(body),
	}

	// Arrays and scalars cannot carry the envelope; they are data.
	var envelope errEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == "" {
		return result, nil
	}

	result.Message = envelope.Error
	switch {
	case envelope.Error == AuthFailedSentinel:
		result.Kind = AuthFailed
	case o.legacyAuthSentinel && envelope.Error == LegacyAuthFailedSentinel:
		result.Kind = AuthFailed
	default:
		result.Kind = ValidationError
	}
	return result, nil
}
