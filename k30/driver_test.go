package k30

import (
	"context"
	"testing"
	"time"

	"github.com/arloliu/go-rs485/bus"
	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T, opts ...Option) (*Driver, *serial.MockPort) {
	t.Helper()

	port := serial.NewMockPort()
	d, err := New(port, append([]Option{WithSleeper(func(time.Duration) {})}, opts...)...)
	require.NoError(t, err)

	return d, port
}

// response builds an input register reply padded to the 8 bytes the driver reads.
func response(value uint16) []byte {
	return append(frame.AppendCRC([]byte{0xFE, 0x04, 0x02, byte(value >> 8), byte(value)}), 0x00)
}

func TestDriver_ReadCO2(t *testing.T) {
	d, port := newTestDriver(t)
	port.Reply(response(400), response(600))

	ppm, err := d.ReadCO2(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(400), ppm)

	ppm, err = d.ReadCO2(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(600), ppm)

	avg, ok := d.Average()
	assert.True(t, ok)
	assert.InDelta(t, 500.0, avg, 1e-9)
	assert.Equal(t, 2, d.Samples())

	assert.Equal(t, append(frame.K30CO2Request(), frame.K30CO2Request()...), port.Written())
	assert.Equal(t, []string{"reset input", "write FE0400030001D5C5", "flush", "read 8"}, port.Ops()[:4])
}

func TestDriver_ReadStatus(t *testing.T) {
	d, port := newTestDriver(t)
	port.Reply(response(0))

	status, err := d.ReadStatus(context.Background())
	require.NoError(t, err)
	assert.Zero(t, status)
	assert.Equal(t, frame.K30StatusRequest(), port.Written())
	assert.Zero(t, d.Samples())
}

func TestDriver_NoCRCByDefault(t *testing.T) {
	d, port := newTestDriver(t)
	bad := response(450)
	bad[5] ^= 0xFF
	port.Reply(bad)

	ppm, err := d.ReadCO2(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(450), ppm)
}

func TestDriver_CRCValidation(t *testing.T) {
	d, port := newTestDriver(t, WithCRCValidation(true), WithRetryCount(2))
	bad := response(450)
	bad[5] ^= 0xFF
	port.Reply(bad, response(451))

	ppm, err := d.ReadCO2(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(451), ppm)
	assert.Equal(t, 1, d.Samples())
	assert.Equal(t, uint64(1), d.Metrics().ChecksumErrCount.Load())
}

func TestDriver_Exhausted(t *testing.T) {
	d, port := newTestDriver(t, WithRetryCount(2))
	port.Reply([]byte{0xFE, 0x04})

	_, err := d.ReadCO2(context.Background())
	require.ErrorIs(t, err, bus.ErrExhausted)
	require.ErrorIs(t, err, bus.ErrShortRead)
	assert.Zero(t, d.Samples())

	_, ok := d.Average()
	assert.False(t, ok)
}

func TestDriver_Clear(t *testing.T) {
	d, port := newTestDriver(t)
	port.Reply(response(400))

	_, err := d.ReadCO2(context.Background())
	require.NoError(t, err)

	d.Clear()
	d.Clear()
	avg, ok := d.Average()
	assert.False(t, ok)
	assert.Zero(t, avg)

	require.NoError(t, d.Close())
	assert.True(t, port.Closed())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(serial.NewMockPort(), WithRetryCount(0))
	require.Error(t, err)

	_, err = New(nil)
	require.Error(t, err)
}
