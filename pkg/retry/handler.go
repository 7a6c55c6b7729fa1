package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rohmanhakim/article-prep/pkg/failure"
	"github.com/rohmanhakim/article-prep/pkg/timeutil"
)

// RetryParam configures Retry. MaxAttempts counts the first call.
type RetryParam struct {
	Jitter       time.Duration
	RandomSeed   int64
	MaxAttempts  int
	BackoffParam timeutil.BackoffParam
}

func NewRetryParam(jitter time.Duration, randomSeed int64, maxAttempts int, backoffParam timeutil.BackoffParam) RetryParam {
	return RetryParam{
		Jitter:       jitter,
		RandomSeed:   randomSeed,
		MaxAttempts:  maxAttempts,
		BackoffParam: backoffParam,
	}
}

// Retry runs fn up to MaxAttempts times, waiting an exponential backoff with
// jitter between attempts. Errors that report themselves as not retryable
// are returned at once. Cancelling ctx stops the wait and returns an
// interrupted RetryError.
func Retry[T any](
	ctx context.Context,
	retryParam RetryParam,
	fn func() (T, failure.ClassifiedError),
) (T, failure.ClassifiedError) {
	var zero T

	if retryParam.MaxAttempts < 1 {
		return zero, &RetryError{
			Message:   "max attempt cannot be 0",
			Cause:     ErrZeroAttempt,
			Retryable: false,
		}
	}

	rng := rand.New(rand.NewSource(retryParam.RandomSeed))

	var lastErr failure.ClassifiedError
	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isErrorRetryable(err) {
			return zero, err
		}
		if attempt == retryParam.MaxAttempts {
			break
		}

		delay := timeutil.ExponentialBackoffDelay(
			attempt,
			retryParam.Jitter,
			rng,
			retryParam.BackoffParam,
		)
		if werr := wait(ctx, delay); werr != nil {
			return zero, &RetryError{
				Message:   fmt.Sprintf("stopped after %d attempts: %v", attempt, werr),
				Cause:     ErrInterrupted,
				Retryable: false,
				Attempts:  attempt,
				Last:      lastErr,
			}
		}
	}

	return zero, &RetryError{
		Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", retryParam.MaxAttempts, lastErr),
		Cause:     ErrExhaustedAttempts,
		Retryable: true,
		Attempts:  retryParam.MaxAttempts,
		Last:      lastErr,
	}
}

func wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isErrorRetryable asks err whether it may be retried. Errors that cannot
// tell are retried.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return true
}
