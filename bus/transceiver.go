package bus

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/go-rs485/logger"
	"github.com/arloliu/go-rs485/serial"
)

// Timing describes the direction switching and delays of one exchange.
type Timing struct {
	// DirectionControl drives DTR and RTS low to transmit and high to receive.
	DirectionControl bool
	// SettleDelay is waited after switching to transmit, before the first byte.
	SettleDelay time.Duration
	// InterByteDelay, when positive, splits the request after its first byte
	// and waits between the two flushed writes.
	InterByteDelay time.Duration
	// PostWriteDelay is waited after the last flush, before switching to receive.
	PostWriteDelay time.Duration
}

// Validate rejects negative delays.
func (t Timing) Validate() error {
	if t.SettleDelay < 0 || t.InterByteDelay < 0 || t.PostWriteDelay < 0 {
		return fmt.Errorf("bus: negative delay in timing %+v", t)
	}

	return nil
}

// Transceiver performs write-then-read exchanges on a half-duplex port.
//
// Transceiver is NOT goroutine-safe.
type Transceiver struct {
	port    serial.Port
	timing  Timing
	logger  logger.Logger
	metrics *Metrics
	sleep   func(time.Duration)
}

// NewTransceiver creates a Transceiver on port.
func NewTransceiver(port serial.Port, timing Timing, opts ...Option) (*Transceiver, error) {
	if port == nil {
		return nil, errors.New("bus: nil port")
	}
	if err := timing.Validate(); err != nil {
		return nil, err
	}

	t := &Transceiver{
		port:    port,
		timing:  timing,
		logger:  logger.GetLogger(),
		metrics: &Metrics{},
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		if err := opt.apply(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Timing returns the exchange timing.
func (t *Transceiver) Timing() Timing {
	return t.timing
}

// Metrics returns the counters updated by the transceiver.
func (t *Transceiver) Metrics() *Metrics {
	return t.metrics
}

// Exchange transmits req and reads exactly n response bytes.
func (t *Transceiver) Exchange(req []byte, n int) ([]byte, error) {
	if err := t.transmit(req); err != nil {
		return nil, err
	}

	resp, err := t.port.ReadFull(n)
	if err != nil {
		return nil, t.readError(err, fmt.Sprintf("got %d of %d bytes", len(resp), n))
	}
	t.logger.Debug("bus: exchange", "tx", fmt.Sprintf("% X", req), "rx", fmt.Sprintf("% X", resp))

	return resp, nil
}

// ExchangeLine transmits req and reads one response line.
func (t *Transceiver) ExchangeLine(req []byte) ([]byte, error) {
	if err := t.transmit(req); err != nil {
		return nil, err
	}

	line, err := t.port.ReadLine()
	if err != nil {
		return nil, t.readError(err, fmt.Sprintf("partial line %q", line))
	}
	if len(line) == 0 {
		t.metrics.incShortReadCount()
		return nil, fmt.Errorf("%w: empty line", ErrShortRead)
	}
	t.logger.Debug("bus: exchange", "tx", fmt.Sprintf("%q", req), "rx", fmt.Sprintf("%q", line))

	return line, nil
}

func (t *Transceiver) transmit(req []byte) error {
	if len(req) == 0 {
		return ErrEmptyRequest
	}
	t.metrics.incExchangeCount()

	// Tail bytes of a reply that arrived after an earlier read timed out.
	if err := t.port.ResetInputBuffer(); err != nil {
		return t.transportError("reset input", err)
	}

	if t.timing.DirectionControl {
		if err := t.setDirection(false); err != nil {
			return err
		}
	}
	t.wait(t.timing.SettleDelay)

	if t.timing.InterByteDelay > 0 && len(req) > 1 {
		if err := t.writeFlush(req[:1]); err != nil {
			return err
		}
		t.wait(t.timing.InterByteDelay)
		if err := t.writeFlush(req[1:]); err != nil {
			return err
		}
	} else if err := t.writeFlush(req); err != nil {
		return err
	}
	t.wait(t.timing.PostWriteDelay)

	if t.timing.DirectionControl {
		if err := t.setDirection(true); err != nil {
			return err
		}
	}

	return nil
}

// setDirection drives both lines low to transmit (DTR first) and high to
// receive (RTS first).
func (t *Transceiver) setDirection(receive bool) error {
	first, second := t.port.SetDTR, t.port.SetRTS
	if receive {
		first, second = t.port.SetRTS, t.port.SetDTR
	}
	if err := first(receive); err != nil {
		return t.transportError("line control", err)
	}
	if err := second(receive); err != nil {
		return t.transportError("line control", err)
	}

	return nil
}

func (t *Transceiver) writeFlush(data []byte) error {
	if _, err := t.port.Write(data); err != nil {
		return t.transportError("write", err)
	}
	if err := t.port.Flush(); err != nil {
		return t.transportError("flush", err)
	}

	return nil
}

func (t *Transceiver) wait(d time.Duration) {
	if d > 0 {
		t.sleep(d)
	}
}

func (t *Transceiver) readError(err error, detail string) error {
	if errors.Is(err, serial.ErrReadTimeout) {
		t.metrics.incShortReadCount()
		return fmt.Errorf("%w: %s", ErrShortRead, detail)
	}

	return t.transportError("read", err)
}

func (t *Transceiver) transportError(op string, err error) error {
	t.metrics.incTransportErrCount()
	return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
}
