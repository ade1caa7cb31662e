package ct200

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/serial"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T, ids []uint8, opts ...Option) (*Driver, *serial.MockPort) {
	t.Helper()

	port := serial.NewMockPort()
	defaults := []Option{
		WithRetryCount(3),
		WithSleeper(func(time.Duration) {}),
	}

	d, err := New(port, ids, append(defaults, opts...)...)
	require.NoError(t, err)

	return d, port
}

func temperatureResponse(addr byte, target, environ int16) []byte {
	payload := []byte{addr, frame.CodeReadHolding, 0x04, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(payload[3:5], uint16(target))
	binary.BigEndian.PutUint16(payload[5:7], uint16(environ))

	return frame.AppendCRC(payload)
}

func emissivityResponse(addr byte, hundredths byte) []byte {
	return frame.AppendCRC([]byte{addr, frame.CodeReadInput, 0x02, 0x00, hundredths})
}

func writeResponse(register uint16, echo byte) []byte {
	payload := []byte{frame.BroadcastAddress, frame.CodeWriteSingle, 0, 0, 0x00, echo}
	binary.BigEndian.PutUint16(payload[2:4], register)

	return frame.AppendCRC(payload)
}

func corrupt(data []byte) []byte {
	out := append([]byte(nil), data...)
	out[len(out)-1] ^= 0xFF

	return out
}

// countOps returns how many recorded port operations equal op.
func countOps(port *serial.MockPort, op string) int {
	n := 0
	for _, o := range port.Ops() {
		if o == op {
			n++
		}
	}

	return n
}

// streamRaw is a RawPort backed by one receive stream. The next reply lands in
// the stream when DTR goes high. With split set, only the first split bytes of
// that reply arrive in time and the rest show up after the reader timed out.
type streamRaw struct {
	in      bytes.Buffer
	replies [][]byte
	split   int
	late    []byte
}

func (s *streamRaw) Read(p []byte) (int, error) {
	if s.in.Len() == 0 {
		s.in.Write(s.late)
		s.late = nil

		return 0, nil
	}

	return s.in.Read(p)
}

func (s *streamRaw) Write(p []byte) (int, error) { return len(p), nil }
func (s *streamRaw) Close() error                { return nil }
func (s *streamRaw) Drain() error                { return nil }
func (s *streamRaw) ResetInputBuffer() error     { s.in.Reset(); return nil }
func (s *streamRaw) SetRTS(bool) error           { return nil }

func (s *streamRaw) SetDTR(high bool) error {
	if !high || len(s.replies) == 0 {
		return nil
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	if s.split > 0 {
		s.in.Write(r[:s.split])
		s.late = r[s.split:]
		s.split = 0

		return nil
	}
	s.in.Write(r)

	return nil
}
