package bus

import (
	"fmt"
	"testing"
	"time"

	"github.com/arloliu/go-rs485/serial"
	"github.com/stretchr/testify/require"
)

var ct200Timing = Timing{
	DirectionControl: true,
	SettleDelay:      500 * time.Millisecond,
	InterByteDelay:   1 * time.Millisecond,
	PostWriteDelay:   5 * time.Millisecond,
}

// sleepRecorder logs each sleep into the port's op stream position it happened at.
type sleepRecorder struct {
	port   *serial.MockPort
	sleeps []string
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.sleeps = append(s.sleeps, fmt.Sprintf("%d:%v", len(s.port.Ops()), d))
}

func newTestTransceiver(t *testing.T, timing Timing) (*Transceiver, *serial.MockPort, *sleepRecorder) {
	t.Helper()

	port := serial.NewMockPort()
	rec := &sleepRecorder{port: port}

	tr, err := NewTransceiver(port, timing, WithSleeper(rec.sleep))
	require.NoError(t, err)

	return tr, port, rec
}
