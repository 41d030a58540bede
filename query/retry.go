package query

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/AnkaaDesign/apiclient/apierr"
)

// DefaultRetries is how many times a failed read is reattempted before
// the error surfaces. Combined with the initial attempt a read hits the
// backend at most three times.
const DefaultRetries = 2

// DefaultRetryBaseDelay is the delay before the first retry; later
// retries double it.
const DefaultRetryBaseDelay = 100 * time.Millisecond

type retryPolicy struct {
	retries   int
	baseDelay time.Duration
}

// backoffDelay returns the wait before retry attempt (1-based):
// exponential steps with up to half a step of jitter.
func (p retryPolicy) backoffDelay(attempt int) time.Duration {
	step := p.baseDelay << (attempt - 1)
	if step <= 0 {
		return 0
	}
	return step + rand.N(step/2+1)
}

// runWithRetry executes do, reattempting transient failures within the
// policy's budget. Only network failures and retryable HTTP statuses
// are reattempted; envelope and validation failures surface
// immediately, as does any error once the budget is spent. Context
// cancellation aborts between attempts.
func runWithRetry[R any](ctx context.Context, policy retryPolicy, do func(ctx context.Context) (R, error), onRetry func(attempt int)) (R, error) {
	for attempt := 0; ; attempt++ {
		result, err := do(ctx)
		if err == nil {
			return result, nil
		}

		if attempt >= policy.retries || !apierr.Retryable(err) {
			var zero R
			return zero, err
		}

		if serr := sleepContext(ctx, policy.backoffDelay(attempt+1)); serr != nil {
			var zero R
			return zero, serr
		}
		if onRetry != nil {
			onRetry(attempt + 1)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
