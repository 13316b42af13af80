// Package domain contains the core business entities and rules for the fare
// discovery engine. These entities are transport-agnostic and form the
// foundation upon which all other components are built.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the search pipeline. Wrap them with fmt.Errorf("%w: ...")
// or the structured error types below so callers can branch with errors.Is.
var (
	// ErrInvalidRequest indicates the search request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUpstreamUnavailable indicates a transient upstream failure:
	// network error, timeout, throttling, or a 5xx response.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamRejected indicates the upstream refused the request
	// parameters (4xx). Not retryable; the caller must fix the request.
	ErrUpstreamRejected = errors.New("upstream rejected request")

	// ErrRateLimitExceeded indicates an admission check denied the search
	// before any upstream activity.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// UpstreamError carries structured detail about a failed upstream call.
type UpstreamError struct {
	// Op is the upstream operation, e.g. "flight-offers" or "flight-destinations".
	Op string

	// StatusCode is the HTTP status returned by the provider, 0 for transport errors.
	StatusCode int

	// Detail is the provider-supplied error description, safe to surface to callers.
	Detail string

	// Err is the underlying cause, if any.
	Err error

	// Retryable marks transient failures (network, 5xx, throttling).
	Retryable bool
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream %s failed", e.Op)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Detail == "" && e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause,
// so errors.Is works against either.
func (e *UpstreamError) Unwrap() []error {
	kind := ErrUpstreamRejected
	if e.Retryable {
		kind = ErrUpstreamUnavailable
	}
	if e.Err != nil {
		return []error{kind, e.Err}
	}
	return []error{kind}
}

// NewUpstreamUnavailable creates a retryable upstream error for network
// failures, timeouts, throttling, and 5xx responses.
func NewUpstreamUnavailable(op string, statusCode int, cause error) *UpstreamError {
	return &UpstreamError{
		Op:         op,
		StatusCode: statusCode,
		Err:        cause,
		Retryable:  true,
	}
}

// NewUpstreamRejected creates a non-retryable upstream error for 4xx
// responses. Detail should carry the provider's explanation so the caller
// can fix the request.
func NewUpstreamRejected(op string, statusCode int, detail string) *UpstreamError {
	return &UpstreamError{
		Op:         op,
		StatusCode: statusCode,
		Detail:     detail,
		Retryable:  false,
	}
}

// RateLimitScope identifies which admission ceiling denied a search.
type RateLimitScope string

// Admission scopes.
const (
	ScopeSession RateLimitScope = "session"
	ScopeIP      RateLimitScope = "ip"
	ScopeMonthly RateLimitScope = "monthly"
)

// RateLimitError reports an admission denial with enough detail for the
// caller to tell "try again tomorrow" from "quota resets on the 1st".
type RateLimitError struct {
	// Scope is the ceiling that denied admission.
	Scope RateLimitScope

	// Limit is the configured ceiling for the scope.
	Limit int

	// ResetAt is when the denying window rolls over.
	ResetAt time.Time
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: %s limit of %d reached, resets at %s",
		e.Scope, e.Limit, e.ResetAt.Format(time.RFC3339))
}

// Unwrap makes errors.Is(err, ErrRateLimitExceeded) work.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimitExceeded
}

// NewRateLimitError creates a RateLimitError for the given scope.
func NewRateLimitError(scope RateLimitScope, limit int, resetAt time.Time) *RateLimitError {
	return &RateLimitError{Scope: scope, Limit: limit, ResetAt: resetAt}
}

// WrapInvalidRequest wraps a formatted message with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest checks if the error is a validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsUpstreamUnavailable checks if the error is a transient upstream failure.
func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

// IsUpstreamRejected checks if the upstream refused the request parameters.
func IsUpstreamRejected(err error) bool {
	return errors.Is(err, ErrUpstreamRejected)
}

// IsRateLimitExceeded checks if the error is an admission denial.
func IsRateLimitExceeded(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}
