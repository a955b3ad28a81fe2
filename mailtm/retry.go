package mailtm

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// RetryConfig controls how often and how patiently calls to the provider are
// retried. The zero value is not usable; use DefaultRetryConfig.
type RetryConfig struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// BaseDelay is the wait before the second attempt. It doubles after
	// every failed attempt.
	BaseDelay time.Duration
}

// DefaultRetryConfig matches the provider's documented tolerance: three
// attempts with 300ms, 600ms waits in between.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts:  3,
		BaseDelay: 300 * time.Millisecond,
	}
}

// delay returns the backoff before retrying after the given zero-based
// failed attempt.
func (r RetryConfig) delay(attempt int) time.Duration {
	return r.BaseDelay << uint(attempt)
}

// withRetry runs op up to cfg.Attempts times, waiting with exponential
// backoff between attempts. Only errors classified as retryable (timeouts,
// 429 and 5xx upstream responses) trigger another attempt; other failures
// surface immediately. Waits are cancelled by ctx.
func withRetry(ctx context.Context, clock clockwork.Clock, cfg RetryConfig, op func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil || !retryable(lastErr) {
			return lastErr
		}

		if attempt == cfg.Attempts-1 {
			break
		}

		timer := clock.NewTimer(cfg.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.Chan():
		}
	}

	return lastErr
}
