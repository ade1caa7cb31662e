package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer(t *testing.T) {
	b := NewBuffer(0)

	_, ok := b.Mean()
	assert.False(t, ok)
	assert.Nil(t, b.Values())

	b.Append(23.5)
	b.Append(24.5)
	m, ok := b.Mean()
	assert.True(t, ok)
	assert.InDelta(t, 24.0, m, 1e-9)
	assert.Equal(t, 2, b.Len())

	b.Clear()
	b.Clear()
	assert.Zero(t, b.Len())
}

func TestBuffer_LimitDropsOldest(t *testing.T) {
	b := NewBuffer(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		b.Append(v)
	}

	assert.Equal(t, []float64{3, 4, 5}, b.Values())
	assert.Zero(t, NewBuffer(-1).limit)
}
