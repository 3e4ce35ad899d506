// Package apierr provides shared error sentinels and retry infrastructure
// for the speech-synthesis provider clients. Provider-specific error types
// (gRPC status codes, HTTP API errors) are classified into these sentinels
// at the adapter boundary.
//
// Providers wrap with fmt.Errorf("%s: %w", msg, sentinel); callers check
// with errors.Is(err, apierr.ErrRateLimit) etc.
package apierr

import "errors"

// Sentinel errors for provider interaction failures.
var (
	// ErrRateLimit indicates the provider rate limit was exceeded (temporary, retryable).
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates the provider quota was exhausted (billing issue, not retryable).
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTimeout indicates a request timed out.
	ErrTimeout = errors.New("request timeout")

	// ErrUnavailable indicates a transient provider-side failure (retryable).
	ErrUnavailable = errors.New("provider unavailable")

	// ErrAuthFailed indicates provider authentication failed (invalid credentials).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")
)

// IsRetryable reports whether an error is transient and worth retrying.
// Rate limits, timeouts, and provider-side failures are retryable; auth,
// quota, and request errors are not.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrUnavailable)
}
