package k30

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/go-rs485/logger"
	"github.com/arloliu/go-rs485/serial"
)

// PostWriteDelay is waited between the flushed query and the response read.
const PostWriteDelay = 10 * time.Millisecond

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
	validateCRC bool
	bufferLimit int
	logger      logger.Logger
	sleep       func(time.Duration)
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
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		if err := opt.apply(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// WithRetryCount sets the number of attempts per query.
func WithRetryCount(n int) Option {
	return optFunc(func(o *options) error {
		if n < 1 || n > MaxRetryCount {
			return fmt.Errorf("k30: retry count %d out of range [1, %d]", n, MaxRetryCount)
		}
		o.retryCount = n

		return nil
	})
}

// WithReadTimeout sets the serial read timeout used by Open.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("k30: read timeout %v must be positive", d)
		}
		o.readTimeout = d

		return nil
	})
}

// WithCRCValidation enables checksum validation of responses.
// Only enable it for sensors whose firmware is confirmed to send a valid checksum.
func WithCRCValidation(enabled bool) Option {
	return optFunc(func(o *options) error {
		o.validateCRC = enabled
		return nil
	})
}

// WithBufferLimit caps the CO2 reading buffer. 0 means unbounded.
func WithBufferLimit(n int) Option {
	return optFunc(func(o *options) error {
		if n < 0 {
			return fmt.Errorf("k30: buffer limit %d must not be negative", n)
		}
		o.bufferLimit = n

		return nil
	})
}

// WithLogger sets the logger for failed attempts and exchanges.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(o *options) error {
		if l == nil {
			return errors.New("k30: nil logger")
		}
		o.logger = l

		return nil
	})
}

// WithSleeper replaces time.Sleep for the post-write delay.
func WithSleeper(sleep func(time.Duration)) Option {
	return optFunc(func(o *options) error {
		if sleep == nil {
			return errors.New("k30: nil sleeper")
		}
		o.sleep = sleep

		return nil
	})
}
