package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	bugst "go.bug.st/serial"
)

const (
	// DefaultReadTimeout is the per-read timeout applied when none is configured.
	DefaultReadTimeout = 1 * time.Second
	// MaxLineLength bounds ReadLine so a device streaming garbage cannot grow a line forever.
	MaxLineLength = 256
)

var (
	// ErrReadTimeout is returned when the port stops delivering bytes before
	// the requested count or line terminator arrived. Partial data is returned with it.
	ErrReadTimeout = errors.New("serial: read timeout")
	// ErrLineTooLong is returned when no line terminator arrives within MaxLineLength bytes.
	ErrLineTooLong = errors.New("serial: line too long")
	// ErrInvalidBaudRate is returned by Open for non-positive baud rates.
	ErrInvalidBaudRate = errors.New("serial: invalid baud rate")
)

// Port is a byte-exact serial port with RS485 direction line control.
type Port interface {
	io.Writer
	// ReadFull reads exactly n bytes. When the read timeout expires first,
	// it returns the bytes received so far together with ErrReadTimeout.
	ReadFull(n int) ([]byte, error)
	// ReadLine reads up to and including the next '\n'.
	ReadLine() ([]byte, error)
	// Flush blocks until all written bytes have left the output buffer.
	Flush() error
	// ResetInputBuffer discards received bytes that were not read yet.
	ResetInputBuffer() error
	// SetRTS drives the RTS line.
	SetRTS(level bool) error
	// SetDTR drives the DTR line.
	SetDTR(level bool) error
	io.Closer
}

// RawPort is the subset of go.bug.st/serial.Port used by SerialPort.
//
// A Read returning 0 bytes and no error means the read timeout expired.
type RawPort interface {
	io.ReadWriteCloser
	Drain() error
	ResetInputBuffer() error
	SetRTS(rts bool) error
	SetDTR(dtr bool) error
}

// SerialPort adapts a RawPort to Port.
//
// SerialPort is NOT goroutine-safe. One driver owns one port.
type SerialPort struct {
	raw  RawPort
	name string
}

var _ Port = (*SerialPort)(nil)

// Option configures Open.
type Option interface {
	apply(*options) error
}

type options struct {
	readTimeout time.Duration
	parity      bugst.Parity
	stopBits    bugst.StopBits
}

type optFunc func(*options) error

func (f optFunc) apply(o *options) error {
	return f(o)
}

// WithReadTimeout sets the per-read timeout. The timeout must be positive.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("serial: read timeout %v must be positive", d)
		}
		o.readTimeout = d

		return nil
	})
}

// WithEvenParity switches the port from 8N1 to 8E1.
func WithEvenParity() Option {
	return optFunc(func(o *options) error {
		o.parity = bugst.EvenParity
		return nil
	})
}

// WithTwoStopBits switches the port to two stop bits.
func WithTwoStopBits() Option {
	return optFunc(func(o *options) error {
		o.stopBits = bugst.TwoStopBits
		return nil
	})
}

// Open opens the named serial port at the given baud rate.
func Open(name string, baudRate int, opts ...Option) (*SerialPort, error) {
	if baudRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBaudRate, baudRate)
	}

	o := &options{
		readTimeout: DefaultReadTimeout,
		parity:      bugst.NoParity,
		stopBits:    bugst.OneStopBit,
	}
	for _, opt := range opts {
		if err := opt.apply(o); err != nil {
			return nil, err
		}
	}

	mode := &bugst.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   o.parity,
		StopBits: o.stopBits,
	}

	port, err := bugst.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", name, err)
	}

	if err := port.SetReadTimeout(o.readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("serial: set read timeout on %s: %w", name, err)
	}

	return &SerialPort{raw: port, name: name}, nil
}

// NewSerialPort wraps an already opened raw port.
func NewSerialPort(name string, raw RawPort) *SerialPort {
	return &SerialPort{raw: raw, name: name}
}

// Name returns the port name passed to Open.
func (p *SerialPort) Name() string {
	return p.name
}

func (p *SerialPort) Write(data []byte) (int, error) {
	total := 0
	for total < len(data) {
		n, err := p.raw.Write(data[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}

	return total, nil
}

func (p *SerialPort) ReadFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := p.raw.Read(buf[got:])
		got += m
		if err != nil {
			return buf[:got], err
		}
		if m == 0 {
			return buf[:got], ErrReadTimeout
		}
	}

	return buf, nil
}

func (p *SerialPort) ReadLine() ([]byte, error) {
	line := make([]byte, 0, 32)
	var b [1]byte
	for len(line) < MaxLineLength {
		m, err := p.raw.Read(b[:])
		if err != nil {
			return line, err
		}
		if m == 0 {
			return line, ErrReadTimeout
		}
		line = append(line, b[0])
		if b[0] == '\n' {
			return line, nil
		}
	}

	return line, ErrLineTooLong
}

func (p *SerialPort) Flush() error {
	return p.raw.Drain()
}

func (p *SerialPort) ResetInputBuffer() error {
	return p.raw.ResetInputBuffer()
}

func (p *SerialPort) SetRTS(level bool) error {
	return p.raw.SetRTS(level)
}

func (p *SerialPort) SetDTR(level bool) error {
	return p.raw.SetDTR(level)
}

func (p *SerialPort) Close() error {
	return p.raw.Close()
}
