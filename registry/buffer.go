package registry

import (
	"sync"

	"github.com/arloliu/go-rs485/internal/util"
)

// Buffer is an ordered sequence of readings.
//
// A Buffer with a positive limit drops its oldest reading when full.
// Buffer is safe for concurrent use.
type Buffer struct {
	mu     sync.Mutex
	values []float64
	limit  int
}

// NewBuffer creates a Buffer holding at most limit readings, or any number when limit is 0.
func NewBuffer(limit int) *Buffer {
	if limit < 0 {
		limit = 0
	}

	return &Buffer{limit: limit}
}

// Append adds v as the newest reading.
func (b *Buffer) Append(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.limit > 0 && len(b.values) >= b.limit {
		copy(b.values, b.values[1:])
		b.values = b.values[:len(b.values)-1]
	}
	b.values = append(b.values, v)
}

// Clear removes every reading.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values = nil
}

// Len returns the number of readings.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.values)
}

// Values returns a copy of the readings, oldest first.
func (b *Buffer) Values() []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return util.CloneSlice(b.values)
}

// Mean returns the arithmetic mean and false when the buffer is empty.
func (b *Buffer) Mean() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return util.Mean(b.values)
}
