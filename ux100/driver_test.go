package ux100

import (
	"context"
	"testing"

	"github.com/arloliu/go-rs485/bus"
	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T, opts ...Option) (*Driver, *serial.MockPort) {
	t.Helper()

	port := serial.NewMockPort()
	d, err := New(port, opts...)
	require.NoError(t, err)

	return d, port
}

func TestDriver_ReadTemperature(t *testing.T) {
	d, port := newTestDriver(t)
	port.Reply([]byte("\x0201DRS,OK,00EB\r\n"), []byte("\x0201DRS,OK,00F5\r\n"))

	v, err := d.ReadTemperature(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 23.5, v, 1e-9)

	v, err = d.ReadTemperature(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 24.5, v, 1e-9)

	avg, ok := d.Average()
	assert.True(t, ok)
	assert.InDelta(t, 24.0, avg, 1e-9)

	ops := port.Ops()
	assert.Equal(t, []string{"reset input", "dtr false", "rts false"}, ops[:3])
	assert.Equal(t, "readline", ops[7])
	assert.Equal(t, append(frame.UX100Request(), frame.UX100Request()...), port.Written())
}

func TestDriver_ReadTemperature_Retry(t *testing.T) {
	d, port := newTestDriver(t, WithRetryCount(3))
	port.Reply([]byte("\x0201DRS,OK\r\n"), []byte("\x0201DRS,OK,0ZZZ\r\n"), []byte("\x0201DRS,OK,0100\r\n"))

	v, err := d.ReadTemperature(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 25.6, v, 1e-9)
	assert.Equal(t, 1, d.Samples())
	assert.Equal(t, uint64(2), d.Metrics().FailureCount.Load())
}

func TestDriver_ReadTemperature_Exhausted(t *testing.T) {
	d, _ := newTestDriver(t, WithRetryCount(2))

	_, err := d.ReadTemperature(context.Background())
	require.ErrorIs(t, err, bus.ErrExhausted)
	require.ErrorIs(t, err, bus.ErrShortRead)
	assert.Zero(t, d.Samples())
}

func TestDriver_Clear(t *testing.T) {
	d, port := newTestDriver(t)
	port.Reply([]byte("\x0201DRS,OK,00EB\r\n"))

	_, err := d.ReadTemperature(context.Background())
	require.NoError(t, err)

	d.Clear()
	d.Clear()
	_, ok := d.Average()
	assert.False(t, ok)

	require.NoError(t, d.Close())
	assert.True(t, port.Closed())
}
