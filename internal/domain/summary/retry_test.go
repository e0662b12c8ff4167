package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/nextpdf/ai-service/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastRetry(attempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: attempts,
		BaseDelay:   2 * time.Second,
		sleep:       func(context.Context, time.Duration) error { return nil },
	}
}

func TestRetryExhaustsAllAttempts(t *testing.T) {
	boom := apperrors.Wrap(apperrors.CodeBackendTransient, "rate limited", nil)
	calls := 0

	_, err := fastRetry(3).Do(context.Background(), testLogger(), "single", func(context.Context) (Generation, error) {
		calls++
		return Generation{}, boom
	})

	require.Equal(t, 3, calls)
	require.ErrorIs(t, err, boom)
}

func TestRetryFatalErrorsGetSameAttemptBudget(t *testing.T) {
	boom := apperrors.Wrap(apperrors.CodeBackendFatal, "bad prompt", nil)
	calls := 0

	_, err := fastRetry(3).Do(context.Background(), testLogger(), "single", func(context.Context) (Generation, error) {
		calls++
		return Generation{}, boom
	})

	require.Equal(t, 3, calls)
	require.Error(t, err)
}

func TestRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	gen, err := fastRetry(3).Do(context.Background(), testLogger(), "single", func(context.Context) (Generation, error) {
		calls++
		if calls < 2 {
			return Generation{}, errors.New("transient blip")
		}
		return Generation{Text: "done"}, nil
	})

	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, "done", gen.Text)
}

func TestBackoffDoubles(t *testing.T) {
	p := NewRetryPolicy(3, 2*time.Second)
	require.Equal(t, 2*time.Second, p.backoff(0))
	require.Equal(t, 4*time.Second, p.backoff(1))
	require.Equal(t, 8*time.Second, p.backoff(2))
}

func TestRetryAbortsWhenContextCancelledDuringBackoff(t *testing.T) {
	p := RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		sleep:       sleepContext,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := p.Do(ctx, testLogger(), "single", func(context.Context) (Generation, error) {
		calls++
		return Generation{}, errors.New("nope")
	})

	require.Equal(t, 1, calls)
	require.ErrorIs(t, err, context.Canceled)
}

func TestIsRateLimitedMatchesTextAndCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "transient code", err: apperrors.Wrap(apperrors.CodeBackendTransient, "throttled", nil), want: true},
		{name: "status text", err: errors.New("backend returned 429"), want: true},
		{name: "quota text", err: errors.New("Quota exceeded for model"), want: true},
		{name: "too many requests", err: errors.New("Too Many Requests"), want: true},
		{name: "plain failure", err: errors.New("connection refused"), want: false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, isRateLimited(tc.err), tc.name)
	}
}

func TestNewRetryPolicyDefaults(t *testing.T) {
	p := NewRetryPolicy(0, 0)
	require.Equal(t, 3, p.MaxAttempts)
	require.Equal(t, 2*time.Second, p.BaseDelay)
}
