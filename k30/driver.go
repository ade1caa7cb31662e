package k30

import (
	"context"
	"fmt"

	"github.com/arloliu/go-rs485/bus"
	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/logger"
	"github.com/arloliu/go-rs485/registry"
	"github.com/arloliu/go-rs485/serial"
)

// Address is the K30 "any sensor" bus address used by the fixed queries.
const Address uint8 = 0xFE

// Timing is the exchange timing of the sensor. The sensor adapter switches
// direction by itself, so the lines are left alone.
var Timing = bus.Timing{PostWriteDelay: PostWriteDelay}

// Driver talks to a single K30 sensor.
//
// Driver is NOT goroutine-safe, except for Average and Clear.
type Driver struct {
	port        serial.Port
	tr          *bus.Transceiver
	retrier     *bus.Retrier
	device      *registry.Device
	validateCRC bool
	metrics     *bus.Metrics
	logger      logger.Logger
}

// Open opens the named port at 19200 baud and creates a Driver.
func Open(name string, opts ...Option) (*Driver, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(name, frame.VariantFixed.BaudRate(), serial.WithReadTimeout(o.readTimeout))
	if err != nil {
		return nil, err
	}

	d, err := newDriver(port, o)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	d.logger.Info("k30: port opened", "port", name, "retry", o.retryCount, "validateCRC", o.validateCRC)

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
	log := o.logger.With("driver", "k30")
	metrics := &bus.Metrics{}

	tr, err := bus.NewTransceiver(port, Timing,
		bus.WithLogger(log),
		bus.WithMetrics(metrics),
		bus.WithSleeper(o.sleep),
	)
	if err != nil {
		return nil, err
	}

	retrier, err := bus.NewRetrier(o.retryCount,
		bus.WithRetryLogger(log),
		bus.WithRetryMetrics(metrics),
	)
	if err != nil {
		return nil, err
	}

	return &Driver{
		port:        port,
		tr:          tr,
		retrier:     retrier,
		device:      registry.NewDevice(Address, o.bufferLimit),
		validateCRC: o.validateCRC,
		metrics:     metrics,
		logger:      log,
	}, nil
}

// ReadCO2 reads the CO2 concentration in ppm and appends it to the buffer.
func (d *Driver) ReadCO2(ctx context.Context) (uint16, error) {
	ppm, err := d.query(ctx, frame.K30CO2Request())
	if err != nil {
		return 0, fmt.Errorf("k30: read co2: %w", err)
	}
	d.device.Append(float64(ppm))

	return ppm, nil
}

// ReadStatus reads the meter status word. 0 means no error flags are set.
func (d *Driver) ReadStatus(ctx context.Context) (uint16, error) {
	status, err := d.query(ctx, frame.K30StatusRequest())
	if err != nil {
		return 0, fmt.Errorf("k30: read status: %w", err)
	}

	return status, nil
}

// Average returns the mean CO2 concentration and false when no reading is buffered.
func (d *Driver) Average() (float64, bool) {
	return d.device.Target().Mean()
}

// Samples returns the number of buffered CO2 readings.
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

func (d *Driver) query(ctx context.Context, req []byte) (uint16, error) {
	var value uint16

	err := d.retrier.Do(ctx, func(_ int) error {
		resp, err := d.tr.Exchange(req, frame.K30ResponseLength)
		if err != nil {
			return err
		}

		v, err := frame.DecodeK30(resp, d.validateCRC)
		if err != nil {
			return err
		}
		value = v

		return nil
	})

	return value, err
}
