package geo

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies why a position fix could not be obtained.
type ErrorKind string

const (
	KindPermissionDenied ErrorKind = "permission_denied"
	KindUnavailable      ErrorKind = "unavailable"
	KindTimeout          ErrorKind = "timeout"
	KindInsecureContext  ErrorKind = "insecure_context"
)

// LocationError is a recoverable acquisition failure. The caller surfaces a
// kind-specific remediation message and may retry.
type LocationError struct {
	Kind ErrorKind
	Err  error
}

func (e *LocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("location acquisition failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("location acquisition failed (%s)", e.Kind)
}

func (e *LocationError) Unwrap() error { return e.Err }

// AsLocationError unwraps err into a *LocationError when it is one.
func AsLocationError(err error) (*LocationError, bool) {
	var le *LocationError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// FixRequest describes one attempt tier of the acquisition chain.
type FixRequest struct {
	// HighAccuracy asks the source for a fresh precise fix instead of a
	// coarse one.
	HighAccuracy bool
	// MaxAge is how stale a cached fix may be; zero forbids cached fixes.
	MaxAge time.Duration
	// Timeout bounds this tier only. The chain's ctx bounds the whole run.
	Timeout time.Duration
}

// Locator is a source of position fixes (a mobile client's reported
// geolocation, a tracker feed, a test fake). Fix must honor ctx cancellation.
type Locator interface {
	Fix(ctx context.Context, req FixRequest) (Coordinates, error)
}

// TimeoutPolicy holds the per-tier timeouts of the acquisition chain.
type TimeoutPolicy struct {
	Fast     time.Duration
	Accurate time.Duration
	Warmup   time.Duration
}

// DefaultTimeoutPolicy mirrors first-fix behavior on mobile devices: a quick
// cached attempt, then a fresh precise attempt, then a long warm-up watch.
func DefaultTimeoutPolicy() TimeoutPolicy {
	return TimeoutPolicy{
		Fast:     3 * time.Second,
		Accurate: 10 * time.Second,
		Warmup:   25 * time.Second,
	}
}

// Acquire runs the tiered acquisition chain against loc: a fast low-accuracy
// attempt (cached fix allowed), then a high-accuracy attempt with no cache,
// then a long warm-up attempt. The first success short-circuits. Cancelling
// ctx aborts whichever tier is in flight so stale coordinates are never acted
// on.
func Acquire(ctx context.Context, loc Locator, policy TimeoutPolicy) (Coordinates, error) {
	tiers := []FixRequest{
		{HighAccuracy: false, MaxAge: time.Minute, Timeout: policy.Fast},
		{HighAccuracy: true, MaxAge: 0, Timeout: policy.Accurate},
		{HighAccuracy: true, MaxAge: 0, Timeout: policy.Warmup},
	}

	var lastErr error
	for _, tier := range tiers {
		if err := ctx.Err(); err != nil {
			return Coordinates{}, &LocationError{Kind: KindTimeout, Err: err}
		}

		tierCtx, cancel := context.WithTimeout(ctx, tier.Timeout)
		coords, err := loc.Fix(tierCtx, tier)
		cancel()

		if err == nil {
			return coords, nil
		}
		lastErr = err

		// Permission and secure-context failures will not improve with a
		// longer timeout.
		if le, ok := AsLocationError(err); ok {
			if le.Kind == KindPermissionDenied || le.Kind == KindInsecureContext {
				return Coordinates{}, le
			}
		}
	}

	if le, ok := AsLocationError(lastErr); ok {
		return Coordinates{}, le
	}
	return Coordinates{}, &LocationError{Kind: KindUnavailable, Err: lastErr}
}
