package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRetrier_AlwaysFailing(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		r, err := NewRetrier(n)
		require.NoError(t, err)

		calls := 0
		err = r.Do(context.Background(), func(int) error {
			calls++
			return ErrShortRead
		})

		require.ErrorIs(t, err, ErrExhausted)
		require.ErrorIs(t, err, ErrShortRead)
		assert.Equal(t, n, calls)

		var exhausted *ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Len(t, exhausted.Attempts, n)
		assert.Equal(t, ErrShortRead, exhausted.Last())
	}
}

func TestRetrier_SucceedsAfterFailures(t *testing.T) {
	metrics := &Metrics{}
	r, err := NewRetrier(3, WithRetryMetrics(metrics))
	require.NoError(t, err)

	var attempts []int
	err = r.Do(context.Background(), func(attempt int) error {
		attempts = append(attempts, attempt)
		if attempt < 3 {
			return frame.ErrChecksumMismatch
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, attempts)
	assert.Equal(t, uint64(3), metrics.AttemptCount.Load())
	assert.Equal(t, uint64(2), metrics.FailureCount.Load())
	assert.Equal(t, uint64(2), metrics.ChecksumErrCount.Load())
	assert.Equal(t, uint64(2), metrics.RetryCount.Load())
	assert.Zero(t, metrics.ExhaustedCount.Load())
}

func TestRetrier_PermanentStopsImmediately(t *testing.T) {
	metrics := &Metrics{}
	r, err := NewRetrier(5, WithRetryMetrics(metrics))
	require.NoError(t, err)

	calls := 0
	err = r.Do(context.Background(), func(int) error {
		calls++
		return Permanent(frame.ErrValueRejected)
	})

	assert.Equal(t, 1, calls)
	require.ErrorIs(t, err, frame.ErrValueRejected)
	require.NotErrorIs(t, err, ErrExhausted)
	assert.Equal(t, uint64(1), metrics.RejectedCount.Load())
	assert.Nil(t, Permanent(nil))
}

func TestRetrier_ReportsEachFailure(t *testing.T) {
	mockLog := logger.NewMockLogger()
	mockLog.On("Warn", "bus: attempt failed", mock.Anything).Times(3)
	mockLog.On("Error", "bus: retries exhausted", mock.Anything).Once()

	var hooked []int
	r, err := NewRetrier(3,
		WithRetryLogger(mockLog),
		WithOnFailure(func(attempt int, _ error) { hooked = append(hooked, attempt) }),
	)
	require.NoError(t, err)

	err = r.Do(context.Background(), func(int) error { return ErrTransport })
	require.ErrorIs(t, err, ErrExhausted)

	mockLog.AssertExpectations(t)
	assert.Equal(t, []int{1, 2, 3}, hooked)
}

func TestRetrier_ContextCheckedBetweenAttempts(t *testing.T) {
	r, err := NewRetrier(5)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err = r.Do(ctx, func(int) error {
		calls++
		cancel()
		return ErrShortRead
	})

	assert.Equal(t, 1, calls)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, ErrShortRead)
	require.NotErrorIs(t, err, ErrExhausted)
}

func TestNewRetrier_Invalid(t *testing.T) {
	_, err := NewRetrier(0)
	require.ErrorIs(t, err, ErrInvalidAttempts)

	_, err = NewRetrier(1, WithRetryLogger(nil))
	require.Error(t, err)
}

func TestExhaustedError_Message(t *testing.T) {
	err := &ExhaustedError{Attempts: []error{ErrShortRead, errors.New("boom")}}
	assert.Equal(t,
		"bus: retries exhausted after 2 attempts; attempt 1: bus: short read; attempt 2: boom",
		err.Error())
	assert.Nil(t, (&ExhaustedError{}).Last())
}
