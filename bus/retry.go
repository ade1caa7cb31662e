package bus

import (
	"context"
	"errors"
	"fmt"

	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/logger"
)

// Retrier runs an operation up to a fixed number of sequential attempts.
type Retrier struct {
	maxAttempts int
	logger      logger.Logger
	metrics     *Metrics
	onFailure   func(attempt int, err error)
}

// NewRetrier creates a Retrier allowing maxAttempts attempts per operation.
func NewRetrier(maxAttempts int, opts ...RetryOption) (*Retrier, error) {
	if maxAttempts < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAttempts, maxAttempts)
	}

	r := &Retrier{
		maxAttempts: maxAttempts,
		logger:      logger.GetLogger(),
		metrics:     &Metrics{},
	}
	for _, opt := range opts {
		if err := opt.apply(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MaxAttempts returns the attempt budget.
func (r *Retrier) MaxAttempts() int {
	return r.maxAttempts
}

// Do calls op until it succeeds, returns a Permanent error, or the attempt
// budget is used up. op receives the 1-based attempt number.
//
// ctx is checked before each attempt only. An attempt in progress always runs
// to completion.
func (r *Retrier) Do(ctx context.Context, op func(attempt int) error) error {
	var failures []error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return errors.Join(append([]error{ctx.Err()}, failures...)...)
		default:
		}

		if attempt > 1 {
			r.metrics.incRetryCount()
		}
		r.metrics.incAttemptCount()

		err := op(attempt)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			r.metrics.incRejectedCount()
			r.logger.Warn("bus: attempt rejected", "attempt", attempt, "error", perm.err)
			return perm.err
		}

		r.metrics.incFailureCount()
		if errors.Is(err, frame.ErrChecksumMismatch) {
			r.metrics.incChecksumErrCount()
		}
		r.logger.Warn("bus: attempt failed",
			"attempt", attempt,
			"maxAttempts", r.maxAttempts,
			"error", err,
		)
		if r.onFailure != nil {
			r.onFailure(attempt, err)
		}
		failures = append(failures, err)
	}

	r.metrics.incExhaustedCount()
	exhausted := &ExhaustedError{Attempts: failures}
	r.logger.Error("bus: retries exhausted", "attempts", len(failures), "error", exhausted.Last())

	return exhausted
}
