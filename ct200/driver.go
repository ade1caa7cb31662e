package ct200

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/go-rs485/bus"
	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/logger"
	"github.com/arloliu/go-rs485/registry"
	"github.com/arloliu/go-rs485/serial"
)

// Emissivity range accepted by the probe.
const (
	MinEmissivity = 0.01
	MaxEmissivity = 0.99
)

// ErrOutOfRange is returned, before any bus activity, for arguments the probe cannot store.
var ErrOutOfRange = errors.New("ct200: value out of range")

// Timing is the exchange timing of the probe.
var Timing = bus.Timing{
	DirectionControl: true,
	SettleDelay:      SettleDelay,
	InterByteDelay:   InterByteDelay,
	PostWriteDelay:   PostWriteDelay,
}

// Reading is one decoded temperature response.
type Reading struct {
	ID      uint8
	Target  float64
	Environ float64
}

// Result pairs a probe id with its reading or failure, as returned by ReadAllTemperature.
type Result struct {
	Reading
	Err error
}

// Driver talks to the CT200 probes of one bus.
//
// Driver is NOT goroutine-safe, except for Average, AverageAll, Clear and
// ClearAll, which only touch the reading buffers.
type Driver struct {
	port    serial.Port
	tr      *bus.Transceiver
	retrier *bus.Retrier
	devices *registry.Registry
	metrics *bus.Metrics
	logger  logger.Logger
}

// Open opens the named port at 19200 baud and creates a Driver for the probes in ids.
func Open(name string, ids []uint8, opts ...Option) (*Driver, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(name, frame.VariantCRC.BaudRate(), serial.WithReadTimeout(o.readTimeout))
	if err != nil {
		return nil, err
	}

	d, err := newDriver(port, ids, o)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	d.logger.Info("ct200: port opened", "port", name, "ids", fmt.Sprint(ids), "retry", o.retryCount)

	return d, nil
}

// New creates a Driver on an already opened port.
func New(port serial.Port, ids []uint8, opts ...Option) (*Driver, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	return newDriver(port, ids, o)
}

func newDriver(port serial.Port, ids []uint8, o *options) (*Driver, error) {
	devices, err := registry.New(ids,
		registry.WithStrictClear(o.strictClear),
		registry.WithBufferLimit(o.bufferLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("ct200: %w", err)
	}

	log := o.logger.With("driver", "ct200")
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
		port:    port,
		tr:      tr,
		retrier: retrier,
		devices: devices,
		metrics: metrics,
		logger:  log,
	}, nil
}

// IDs returns the configured probe ids in registration order.
func (d *Driver) IDs() []uint8 {
	return d.devices.IDs()
}

// Metrics returns the bus counters of the driver.
func (d *Driver) Metrics() *bus.Metrics {
	return d.metrics
}

// Close closes the serial port.
func (d *Driver) Close() error {
	return d.port.Close()
}

// ReadTemperature reads target and environment temperature from probe id and
// appends them to the probe's buffers.
func (d *Driver) ReadTemperature(ctx context.Context, id uint8) (Reading, error) {
	dev, err := d.devices.Lookup(id)
	if err != nil {
		return Reading{}, err
	}

	fields, err := d.transact(ctx, frame.ReadTemperature, frame.TemperatureRequest(id))
	if err != nil {
		return Reading{}, fmt.Errorf("ct200: read temperature of %d: %w", id, err)
	}
	dev.Record(fields.Target, fields.Environ)

	return Reading{ID: id, Target: fields.Target, Environ: fields.Environ}, nil
}

// ReadAllTemperature reads every configured probe in registration order.
// A failing probe does not stop the others.
func (d *Driver) ReadAllTemperature(ctx context.Context) []Result {
	ids := d.devices.IDs()
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		reading, err := d.ReadTemperature(ctx, id)
		if err != nil {
			reading.ID = id
		}
		results = append(results, Result{Reading: reading, Err: err})
	}

	return results
}

// GetEmissivity reads the emissivity stored in probe id.
func (d *Driver) GetEmissivity(ctx context.Context, id uint8) (float64, error) {
	if _, err := d.devices.Lookup(id); err != nil {
		return 0, err
	}

	fields, err := d.transact(ctx, frame.ReadEmissivity, frame.EmissivityRequest(id))
	if err != nil {
		return 0, fmt.Errorf("ct200: read emissivity of %d: %w", id, err)
	}

	return fields.Emissivity, nil
}

// SetEmissivity stores value, rounded to hundredths, in the connected probe.
// value must lie in [MinEmissivity, MaxEmissivity].
func (d *Driver) SetEmissivity(ctx context.Context, value float64) error {
	if math.IsNaN(value) || value < MinEmissivity || value > MaxEmissivity {
		return fmt.Errorf("%w: emissivity %v not in [%v, %v]", ErrOutOfRange, value, MinEmissivity, MaxEmissivity)
	}

	hundredths := byte(math.Round(value * 100))
	if _, err := d.transact(ctx, frame.WriteEmissivity, frame.WriteEmissivityRequest(hundredths)); err != nil {
		return fmt.Errorf("ct200: set emissivity %.2f: %w", value, err)
	}
	d.logger.Info("ct200: emissivity set", "emissivity", value)

	return nil
}

// WriteID assigns newID to the connected probe.
func (d *Driver) WriteID(ctx context.Context, newID uint8) error {
	if newID == frame.BroadcastAddress {
		return fmt.Errorf("%w: id 0x%02X is the broadcast address", ErrOutOfRange, newID)
	}

	if _, err := d.transact(ctx, frame.WriteID, frame.WriteIDRequest(newID)); err != nil {
		return fmt.Errorf("ct200: write id %d: %w", newID, err)
	}
	d.logger.Info("ct200: id written", "id", newID)

	return nil
}

// Average returns the running average of probe id.
func (d *Driver) Average(id uint8) (registry.Average, error) {
	return d.devices.Average(id)
}

// AverageAll returns the running average of every probe in registration order.
func (d *Driver) AverageAll() []registry.Average {
	return d.devices.AverageAll()
}

// Clear empties the buffers of probe id.
func (d *Driver) Clear(id uint8) error {
	return d.devices.Clear(id)
}

// ClearAll empties the buffers of every probe.
func (d *Driver) ClearAll() {
	d.devices.ClearAll()
}

// transact runs one request under the retry budget and returns the decoded,
// validated response. A write echoing another value fails without retry.
func (d *Driver) transact(ctx context.Context, fn frame.Function, req []byte) (frame.Fields, error) {
	var fields frame.Fields

	err := d.retrier.Do(ctx, func(_ int) error {
		resp, err := d.tr.Exchange(req, fn.ResponseLength())
		if err != nil {
			return err
		}

		f, err := frame.Decode(fn, resp)
		if err != nil {
			return err
		}
		if req[0] != frame.BroadcastAddress {
			if err := f.CheckAddress(req[0]); err != nil {
				return err
			}
		}
		if fn.IsWrite() {
			if err := f.CheckEcho(req[5]); err != nil {
				return bus.Permanent(err)
			}
		}
		fields = f

		return nil
	})

	return fields, err
}
