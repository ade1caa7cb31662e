package ct200

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/go-rs485/logger"
	"github.com/arloliu/go-rs485/serial"
)

// Bus timing required by the probe.
const (
	SettleDelay    = 500 * time.Millisecond // after switching to transmit
	InterByteDelay = 1 * time.Millisecond   // between the address byte and the rest
	PostWriteDelay = 5 * time.Millisecond   // before switching to receive
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
	logger      logger.Logger
	sleep       func(time.Duration)
	strictClear bool
	bufferLimit int
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

// WithRetryCount sets the number of attempts per operation.
func WithRetryCount(n int) Option {
	return optFunc(func(o *options) error {
		if n < 1 || n > MaxRetryCount {
			return fmt.Errorf("ct200: retry count %d out of range [1, %d]", n, MaxRetryCount)
		}
		o.retryCount = n

		return nil
	})
}

// WithReadTimeout sets the serial read timeout used by Open.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("ct200: read timeout %v must be positive", d)
		}
		o.readTimeout = d

		return nil
	})
}

// WithLogger sets the logger. The driver tags it with driver=ct200.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(o *options) error {
		if l == nil {
			return errors.New("ct200: nil logger")
		}
		o.logger = l

		return nil
	})
}

// WithSleeper replaces time.Sleep for the bus delays.
func WithSleeper(sleep func(time.Duration)) Option {
	return optFunc(func(o *options) error {
		if sleep == nil {
			return errors.New("ct200: nil sleeper")
		}
		o.sleep = sleep

		return nil
	})
}

// WithStrictClear makes Clear fail for unconfigured ids instead of ignoring them.
func WithStrictClear(strict bool) Option {
	return optFunc(func(o *options) error {
		o.strictClear = strict
		return nil
	})
}

// WithBufferLimit caps each probe's reading buffers. 0 means unbounded.
func WithBufferLimit(n int) Option {
	return optFunc(func(o *options) error {
		if n < 0 {
			return fmt.Errorf("ct200: buffer limit %d must not be negative", n)
		}
		o.bufferLimit = n

		return nil
	})
}
