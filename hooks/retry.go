package hooks

import (
	"context"
	"time"

	"github.com/charmingruby/decor/decor"
	"github.com/charmingruby/decor/internal/timeutil"
)

// RetryConfig defines retry behavior for Retry.
//
// Example:
//
//	cfg := RetryConfig{Attempts: 3, Delay: 100 * time.Millisecond}
type RetryConfig struct { //nolint:govet // fieldalignment: keep numeric fields grouped for readability
	Context     context.Context
	Attempts    int
	Delay       time.Duration
	Backoff     func(attempt int, err error) time.Duration
	ShouldRetry func(error) bool
	OnRetry     func(attempt int, err error)
}

// Retry re-invokes the decorated function with the same arguments until it
// succeeds, ShouldRetry rejects the error or Attempts is exhausted. The last
// error is returned unchanged. Cancelling cfg.Context stops the loop with the
// context's error.
//
// Example:
//
//	flaky := decor.Chain[string, []byte](fetch, hooks.Retry[string, []byte](hooks.RetryConfig{
//		Attempts: 5,
//		Backoff:  hooks.ExponentialBackoff(10*time.Millisecond, time.Second),
//	}))
func Retry[A any, R any](cfg RetryConfig) decor.Decorator[A, R] { //nolint:gocognit // branching handles retry policies
	return func(target decor.Callable[A, R]) decor.Callable[A, R] {
		return decor.Around(target, func(call decor.Call[A], next decor.Func[A, R]) (R, error) {
			ctx := cfg.Context
			if ctx == nil {
				ctx = context.Background()
			}
			attempts := cfg.Attempts
			if attempts <= 0 {
				attempts = 1
			}
			var value R
			var lastErr error
			for attempt := 1; attempt <= attempts; attempt++ {
				if err := ctx.Err(); err != nil {
					var zero R
					return zero, err
				}
				value, lastErr = next(call.Args)
				if lastErr == nil {
					return value, nil
				}
				if cfg.ShouldRetry != nil && !cfg.ShouldRetry(lastErr) {
					break
				}
				if attempt == attempts {
					break
				}
				if cfg.OnRetry != nil {
					cfg.OnRetry(attempt, lastErr)
				}
				delay := cfg.Delay
				if cfg.Backoff != nil {
					delay = cfg.Backoff(attempt, lastErr)
				}
				if !timeutil.Sleep(ctx, delay) {
					var zero R
					return zero, ctx.Err()
				}
			}
			return value, lastErr
		})
	}
}

// ExponentialBackoff doubles base after every failed attempt, capped at limit
// when limit is positive.
func ExponentialBackoff(base, limit time.Duration) func(attempt int, err error) time.Duration {
	return func(attempt int, _ error) time.Duration {
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
			if limit > 0 && d >= limit {
				return limit
			}
		}
		if limit > 0 && d > limit {
			return limit
		}
		return d
	}
}
