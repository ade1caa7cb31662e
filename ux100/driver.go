package ux100

import (
	"context"
	"fmt"

	"github.com/arloliu/go-rs485/bus"
	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/logger"
	"github.com/arloliu/go-rs485/registry"
	"github.com/arloliu/go-rs485/serial"
)

// Address is the controller station number addressed by the fixed query.
const Address uint8 = 0x01

// Timing switches direction around the write without extra delays.
var Timing = bus.Timing{DirectionControl: true}

// Driver talks to a single UX100 controller.
//
// Driver is NOT goroutine-safe, except for Average and Clear.
type Driver struct {
	port    serial.Port
	tr      *bus.Transceiver
	retrier *bus.Retrier
	device  *registry.Device
	metrics *bus.Metrics
	logger  logger.Logger
}

// Open opens the named port at 9600 baud and creates a Driver.
func Open(name string, opts ...Option) (*Driver, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(name, frame.VariantASCII.BaudRate(), serial.WithReadTimeout(o.readTimeout))
	if err != nil {
		return nil, err
	}

	d, err := newDriver(port, o)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	d.logger.Info("ux100: port opened", "port", name, "retry", o.retryCount)

	return d, nil
}

// New creates a Driver on an already opened port.
func New(port serial.Port, opts ...Option) (*Driver, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	return newDriver(port, o)
}

func newDriver(port serial.Port, o *options) (*Driver, error) {
	log := o.logger.With("driver", "ux100")
	metrics := &bus.Metrics{}

	tr, err := bus.NewTransceiver(port, Timing, bus.WithLogger(log), bus.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}

	retrier, err := bus.NewRetrier(o.retryCount, bus.WithRetryLogger(log), bus.WithRetryMetrics(metrics))
	if err != nil {
		return nil, err
	}

	return &Driver{
		port:    port,
		tr:      tr,
		retrier: retrier,
		device:  registry.NewDevice(Address, o.bufferLimit),
		metrics: metrics,
		logger:  log,
	}, nil
}

// ReadTemperature reads the process temperature in degrees and appends it to the buffer.
func (d *Driver) ReadTemperature(ctx context.Context) (float64, error) {
	var temp float64

	err := d.retrier.Do(ctx, func(_ int) error {
		line, err := d.tr.ExchangeLine(frame.UX100Request())
		if err != nil {
			return err
		}

		v, err := frame.DecodeUX100(line)
		if err != nil {
			return err
		}
		temp = v

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("ux100: read temperature: %w", err)
	}
	d.device.Append(temp)

	return temp, nil
}

// Average returns the mean temperature and false when no reading is buffered.
func (d *Driver) Average() (float64, bool) {
	return d.device.Target().Mean()
}

// Samples returns the number of buffered readings.
func (d *Driver) Samples() int {
	return d.device.Target().Len()
}

// Clear empties the reading buffer.
func (d *Driver) Clear() {
	d.device.Clear()
}

// Metrics returns the bus counters of the driver.
func (d *Driver) Metrics() *bus.Metrics {
	return d.metrics
}

// Close closes the serial port.
func (d *Driver) Close() error {
	return d.port.Close()
}
