package bus

import (
	"errors"
	"time"

	"github.com/arloliu/go-rs485/logger"
)

// Option configures a Transceiver.
type Option interface {
	apply(*Transceiver) error
}

type optFunc func(*Transceiver) error

func (f optFunc) apply(t *Transceiver) error {
	return f(t)
}

// WithLogger sets the logger for frame dumps. The default is logger.GetLogger().
func WithLogger(l logger.Logger) Option {
	return optFunc(func(t *Transceiver) error {
		if l == nil {
			return errors.New("bus: nil logger")
		}
		t.logger = l

		return nil
	})
}

// WithMetrics shares m with the transceiver.
func WithMetrics(m *Metrics) Option {
	return optFunc(func(t *Transceiver) error {
		if m == nil {
			return errors.New("bus: nil metrics")
		}
		t.metrics = m

		return nil
	})
}

// WithSleeper replaces time.Sleep for the settle delays.
func WithSleeper(sleep func(time.Duration)) Option {
	return optFunc(func(t *Transceiver) error {
		if sleep == nil {
			return errors.New("bus: nil sleeper")
		}
		t.sleep = sleep

		return nil
	})
}

// RetryOption configures a Retrier.
type RetryOption interface {
	apply(*Retrier) error
}

type retryOptFunc func(*Retrier) error

func (f retryOptFunc) apply(r *Retrier) error {
	return f(r)
}

// WithRetryLogger sets the logger that reports failed attempts.
func WithRetryLogger(l logger.Logger) RetryOption {
	return retryOptFunc(func(r *Retrier) error {
		if l == nil {
			return errors.New("bus: nil logger")
		}
		r.logger = l

		return nil
	})
}

// WithRetryMetrics shares m with the retrier.
func WithRetryMetrics(m *Metrics) RetryOption {
	return retryOptFunc(func(r *Retrier) error {
		if m == nil {
			return errors.New("bus: nil metrics")
		}
		r.metrics = m

		return nil
	})
}

// WithOnFailure registers a hook called after each failed attempt.
func WithOnFailure(fn func(attempt int, err error)) RetryOption {
	return retryOptFunc(func(r *Retrier) error {
		r.onFailure = fn
		return nil
	})
}
