package summary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/nextpdf/ai-service/pkg/errors"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBase     = 2 * time.Second
)

// RetryPolicy wraps a single backend call with bounded retries and
// exponential backoff. The wait before attempt n+1 is base << n, so the
// default schedule is 2s, 4s, 8s. Rate-limit classification changes only the
// log wording, never the schedule. The final failure is propagated as-is.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// sleep is swapped out in tests to avoid real waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryPolicy returns the production policy.
func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if baseDelay <= 0 {
		baseDelay = defaultRetryBase
	}
	return RetryPolicy{MaxAttempts: maxAttempts, BaseDelay: baseDelay}
}

// Do invokes call until it succeeds or attempts are exhausted.
func (p RetryPolicy) Do(ctx context.Context, logger *slog.Logger, label string, call func(ctx context.Context) (Generation, error)) (Generation, error) {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		gen, err := call(ctx)
		if err == nil {
			return gen, nil
		}
		lastErr = err

		if attempt == p.MaxAttempts-1 {
			logger.Error("generation failed after final attempt", "call", label, "attempts", p.MaxAttempts, "error", err)
			break
		}

		wait := p.backoff(attempt)
		if isRateLimited(err) {
			logger.Warn("generation hit rate limit, backing off", "call", label, "attempt", attempt+1, "wait", wait.String())
		} else {
			logger.Warn("generation failed, retrying", "call", label, "attempt", attempt+1, "wait", wait.String(), "error", err)
		}
		if err := sleep(ctx, wait); err != nil {
			return Generation{}, err
		}
	}
	return Generation{}, lastErr
}

// backoff returns the wait after the zero-based attempt index.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	return p.BaseDelay << attempt
}

// isRateLimited recognizes quota exhaustion both structurally (the adapter
// tagged it transient) and textually (HTTP 429 / quota wording) for
// backends that do not distinguish it.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if apperrors.IsRetryable(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "quota")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
