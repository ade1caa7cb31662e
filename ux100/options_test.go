package ux100

import (
	"testing"
	"time"

	"github.com/arloliu/go-rs485/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	o, err := newOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRetryCount, o.retryCount)
	assert.Equal(t, DefaultReadTimeout, o.readTimeout)

	l := logger.NewMockLogger()
	o, err = newOptions([]Option{
		WithRetryCount(2),
		WithReadTimeout(50 * time.Millisecond),
		WithBufferLimit(4),
		WithLogger(l),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, o.retryCount)
	assert.Equal(t, 50*time.Millisecond, o.readTimeout)
	assert.Equal(t, 4, o.bufferLimit)
	assert.Same(t, l, o.logger)
}

func TestNewOptions_Invalid(t *testing.T) {
	for _, opt := range []Option{
		WithRetryCount(0),
		WithReadTimeout(-time.Second),
		WithBufferLimit(-1),
		WithLogger(nil),
	} {
		_, err := newOptions([]Option{opt})
		require.Error(t, err)
	}
}
