package config

import (
	"time"

	"github.com/arloliu/go-rs485/ct200"
	"github.com/arloliu/go-rs485/k30"
	"github.com/arloliu/go-rs485/logger"
	"github.com/arloliu/go-rs485/ux100"
)

// MaxRetry is the largest retry count accepted by every driver.
const MaxRetry = ct200.MaxRetryCount

// Level returns the configured log level.
func (c *Config) Level() logger.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}

// DeviceIDs returns the probe ids as bus addresses. Validate guarantees they fit.
func (c *CT200Config) DeviceIDs() []uint8 {
	ids := make([]uint8, len(c.IDs))
	for i, id := range c.IDs {
		ids[i] = uint8(id)
	}

	return ids
}

// Options returns the driver options described by c.
func (c *CT200Config) Options(l logger.Logger) []ct200.Option {
	return []ct200.Option{
		ct200.WithRetryCount(c.Retry),
		ct200.WithReadTimeout(time.Duration(c.ReadTimeoutMs) * time.Millisecond),
		ct200.WithBufferLimit(c.BufferLimit),
		ct200.WithStrictClear(c.StrictClear),
		ct200.WithLogger(l),
	}
}

// K30Options returns the K30 driver options described by s.
func (s *SensorConfig) K30Options(l logger.Logger) []k30.Option {
	return []k30.Option{
		k30.WithRetryCount(s.Retry),
		k30.WithReadTimeout(time.Duration(s.ReadTimeoutMs) * time.Millisecond),
		k30.WithBufferLimit(s.BufferLimit),
		k30.WithCRCValidation(s.ValidateCRC),
		k30.WithLogger(l),
	}
}

// UX100Options returns the UX100 driver options described by s.
func (s *SensorConfig) UX100Options(l logger.Logger) []ux100.Option {
	return []ux100.Option{
		ux100.WithRetryCount(s.Retry),
		ux100.WithReadTimeout(time.Duration(s.ReadTimeoutMs) * time.Millisecond),
		ux100.WithBufferLimit(s.BufferLimit),
		ux100.WithLogger(l),
	}
}

// Drivers holds the drivers opened from a Config. Unconfigured sensors are nil.
type Drivers struct {
	CT200 *ct200.Driver
	K30   *k30.Driver
	UX100 *ux100.Driver
}

// Close closes every opened driver and returns the first error.
func (d *Drivers) Close() error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if d.CT200 != nil {
		keep(d.CT200.Close())
	}
	if d.K30 != nil {
		keep(d.K30.Close())
	}
	if d.UX100 != nil {
		keep(d.UX100.Close())
	}

	return first
}

// Open opens a driver for every configured sensor. On failure the drivers
// already opened are closed.
func Open(cfg *Config, l logger.Logger) (*Drivers, error) {
	if l == nil {
		l = logger.GetLogger()
	}
	l.SetLevel(cfg.Level())

	drivers := &Drivers{}
	var err error

	if c := cfg.CT200; c != nil {
		if drivers.CT200, err = ct200.Open(c.Port, c.DeviceIDs(), c.Options(l)...); err != nil {
			_ = drivers.Close()
			return nil, err
		}
	}
	if s := cfg.K30; s != nil {
		if drivers.K30, err = k30.Open(s.Port, s.K30Options(l)...); err != nil {
			_ = drivers.Close()
			return nil, err
		}
	}
	if s := cfg.UX100; s != nil {
		if drivers.UX100, err = ux100.Open(s.Port, s.UX100Options(l)...); err != nil {
			_ = drivers.Close()
			return nil, err
		}
	}

	return drivers, nil
}
