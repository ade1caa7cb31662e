package registry

import "sync"

// Device holds the reading buffers of one bus address.
//
// Record, Append, Clear and Average are serialized, so an Average never sees
// one buffer updated without the other.
type Device struct {
	mu      sync.RWMutex
	id      uint8
	target  *Buffer
	environ *Buffer
}

// NewDevice creates a Device whose buffers hold at most limit readings (0 = unbounded).
func NewDevice(id uint8, limit int) *Device {
	return &Device{
		id:      id,
		target:  NewBuffer(limit),
		environ: NewBuffer(limit),
	}
}

// ID returns the bus address.
func (d *Device) ID() uint8 {
	return d.id
}

// Target returns the primary measurement buffer. Single-metric devices only use this one.
func (d *Device) Target() *Buffer {
	return d.target
}

// Environ returns the reference measurement buffer.
func (d *Device) Environ() *Buffer {
	return d.environ
}

// Record appends one validated reading pair.
func (d *Device) Record(target, environ float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.target.Append(target)
	d.environ.Append(environ)
}

// Append records a reading of a single-metric device into the target buffer.
func (d *Device) Append(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.target.Append(v)
}

// Clear empties both buffers.
func (d *Device) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.target.Clear()
	d.environ.Clear()
}

// Average returns the mean of both buffers.
func (d *Device) Average() Average {
	d.mu.RLock()
	defer d.mu.RUnlock()

	avg := Average{ID: d.id, Samples: d.target.Len()}
	if avg.Samples == 0 {
		return avg
	}
	avg.Target, _ = d.target.Mean()
	avg.Environ, _ = d.environ.Mean()

	return avg
}

// Average is the running mean of one device's buffers.
// Samples is 0 for a device without readings, in which case Target and Environ are 0.
type Average struct {
	ID      uint8
	Target  float64
	Environ float64
	Samples int
}

// IsEmpty reports whether the average was taken over no readings.
func (a Average) IsEmpty() bool {
	return a.Samples == 0
}
