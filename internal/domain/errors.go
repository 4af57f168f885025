package domain

import "github.com/cockroachdb/errors"

var (
	ErrConfiguration         = errors.New("validation process misconfigured")
	ErrInvalidDiagnosticData = errors.New("invalid diagnostic data")
	ErrInvalidPolicy         = errors.New("invalid validation policy")
	ErrPolicyNotFound        = errors.New("validation policy not found")
	ErrNotFound              = errors.New("not found")
	ErrRateLimited           = errors.New("rate limited")
	ErrRateLimiterDown       = errors.New("rate limiter unavailable")
)
