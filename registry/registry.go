package registry

import (
	"errors"
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

var (
	// ErrUnknownDevice is returned for an id outside the registered set.
	ErrUnknownDevice = errors.New("registry: unknown device")
	// ErrDuplicateDevice is returned by New when an id is listed twice.
	ErrDuplicateDevice = errors.New("registry: duplicate device id")
	// ErrNoDevices is returned by New for an empty id list.
	ErrNoDevices = errors.New("registry: no devices")
)

// Registry maps device ids to their Device records.
//
// The device set is fixed at construction. Buffers are safe to read while the
// bus owner records readings.
type Registry struct {
	devices     *xsync.MapOf[uint8, *Device]
	order       []uint8
	strictClear bool
	bufferLimit int
}

// Option configures a Registry.
type Option interface {
	apply(*Registry) error
}

type optFunc func(*Registry) error

func (f optFunc) apply(r *Registry) error {
	return f(r)
}

// WithStrictClear makes Clear of an unregistered id fail with ErrUnknownDevice
// instead of doing nothing.
func WithStrictClear(strict bool) Option {
	return optFunc(func(r *Registry) error {
		r.strictClear = strict
		return nil
	})
}

// WithBufferLimit caps every buffer at limit readings. 0 means unbounded.
func WithBufferLimit(limit int) Option {
	return optFunc(func(r *Registry) error {
		if limit < 0 {
			return fmt.Errorf("registry: buffer limit %d must not be negative", limit)
		}
		r.bufferLimit = limit

		return nil
	})
}

// New creates a Registry holding one Device per id, in the given order.
func New(ids []uint8, opts ...Option) (*Registry, error) {
	if len(ids) == 0 {
		return nil, ErrNoDevices
	}

	r := &Registry{
		devices: xsync.NewMapOf[uint8, *Device](),
		order:   make([]uint8, 0, len(ids)),
	}
	for _, opt := range opts {
		if err := opt.apply(r); err != nil {
			return nil, err
		}
	}

	for _, id := range ids {
		if _, loaded := r.devices.LoadOrStore(id, NewDevice(id, r.bufferLimit)); loaded {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDevice, id)
		}
		r.order = append(r.order, id)
	}

	return r, nil
}

// Lookup returns the Device registered under id.
func (r *Registry) Lookup(id uint8) (*Device, error) {
	dev, ok := r.devices.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDevice, id)
	}

	return dev, nil
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id uint8) bool {
	_, ok := r.devices.Load(id)
	return ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []uint8 {
	return append([]uint8(nil), r.order...)
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	return len(r.order)
}

// StrictClear reports whether Clear rejects unknown ids.
func (r *Registry) StrictClear() bool {
	return r.strictClear
}

// Record appends a validated reading pair to the device's buffers.
func (r *Registry) Record(id uint8, target, environ float64) error {
	dev, err := r.Lookup(id)
	if err != nil {
		return err
	}
	dev.Record(target, environ)

	return nil
}

// Clear empties the buffers of id. An unknown id is ignored unless the
// registry was built WithStrictClear(true).
func (r *Registry) Clear(id uint8) error {
	dev, err := r.Lookup(id)
	if err != nil {
		if r.strictClear {
			return err
		}
		return nil
	}
	dev.Clear()

	return nil
}

// ClearAll empties every device's buffers.
func (r *Registry) ClearAll() {
	r.devices.Range(func(_ uint8, dev *Device) bool {
		dev.Clear()
		return true
	})
}

// Average returns the running average of id.
func (r *Registry) Average(id uint8) (Average, error) {
	dev, err := r.Lookup(id)
	if err != nil {
		return Average{}, err
	}

	return dev.Average(), nil
}

// AverageAll returns the average of every device in registration order.
func (r *Registry) AverageAll() []Average {
	avgs := make([]Average, 0, len(r.order))
	for _, id := range r.order {
		dev, _ := r.devices.Load(id)
		avgs = append(avgs, dev.Average())
	}

	return avgs
}
