package ux100

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/go-rs485/logger"
	"github.com/arloliu/go-rs485/serial"
)

// Defaults and bounds of the driver options.
const (
	DefaultRetryCount  = 3
	DefaultReadTimeout = serial.DefaultReadTimeout

	MaxRetryCount = 32
)

// Option configures a Driver.
type Option interface {
	apply(*options) error
}

type options struct {
	retryCount  int
	readTimeout time.Duration
	bufferLimit int
	logger      logger.Logger
}

type optFunc func(*options) error

func (f optFunc) apply(o *options) error {
	return f(o)
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		retryCount:  DefaultRetryCount,
		readTimeout: DefaultReadTimeout,
		logger:      logger.GetLogger(),
	}
	for _, opt := range opts {
		if err := opt.apply(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// WithRetryCount sets the number of attempts per reading.
func WithRetryCount(n int) Option {
	return optFunc(func(o *options) error {
		if n < 1 || n > MaxRetryCount {
			return fmt.Errorf("ux100: retry count %d out of range [1, %d]", n, MaxRetryCount)
		}
		o.retryCount = n

		return nil
	})
}

// WithReadTimeout sets the serial read timeout used by Open.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("ux100: read timeout %v must be positive", d)
		}
		o.readTimeout = d

		return nil
	})
}

// WithBufferLimit caps the temperature buffer. 0 means unbounded.
func WithBufferLimit(n int) Option {
	return optFunc(func(o *options) error {
		if n < 0 {
			return fmt.Errorf("ux100: buffer limit %d must not be negative", n)
		}
		o.bufferLimit = n

		return nil
	})
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(o *options) error {
		if l == nil {
			return errors.New("ux100: nil logger")
		}
		o.logger = l

		return nil
	})
}
