package serial

import (
	"fmt"
	"sync"
)

// MockPort is a scripted Port for tests.
//
// Reads are served from a queue of replies, one reply per ReadFull or ReadLine
// call. A reply shorter than the requested length is returned together with
// ErrReadTimeout, as is a read on an empty queue. Every call is recorded in Ops.
type MockPort struct {
	mu      sync.Mutex
	replies []mockReply
	ops     []string
	written []byte
	closed  bool

	// WriteErr, FlushErr, ResetErr and LineErr, when set, fail every matching call.
	WriteErr error
	FlushErr error
	ResetErr error
	LineErr  error
}

type mockReply struct {
	data []byte
	err  error
}

var _ Port = (*MockPort)(nil)

// NewMockPort creates an empty MockPort.
func NewMockPort() *MockPort {
	return &MockPort{}
}

// Reply queues data for the next read.
func (m *MockPort) Reply(data ...[]byte) *MockPort {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range data {
		m.replies = append(m.replies, mockReply{data: d})
	}

	return m
}

// ReplyErr queues a read failure.
func (m *MockPort) ReplyErr(err error) *MockPort {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replies = append(m.replies, mockReply{err: err})

	return m
}

// Ops returns a copy of the recorded call log.
func (m *MockPort) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.ops...)
}

// Written returns every byte written so far.
func (m *MockPort) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]byte(nil), m.written...)
}

// Pending returns the number of queued replies not yet consumed.
func (m *MockPort) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.replies)
}

// Closed reports whether Close was called.
func (m *MockPort) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

func (m *MockPort) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, fmt.Sprintf("write %X", data))
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	m.written = append(m.written, data...)

	return len(data), nil
}

func (m *MockPort) ReadFull(n int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, fmt.Sprintf("read %d", n))
	r, ok := m.pop()
	if !ok {
		return nil, ErrReadTimeout
	}
	if r.err != nil {
		return r.data, r.err
	}
	if len(r.data) < n {
		return r.data, ErrReadTimeout
	}

	return r.data[:n], nil
}

func (m *MockPort) ReadLine() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, "readline")
	if m.LineErr != nil {
		return nil, m.LineErr
	}
	r, ok := m.pop()
	if !ok {
		return nil, ErrReadTimeout
	}

	return r.data, r.err
}

func (m *MockPort) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, "flush")

	return m.FlushErr
}

// ResetInputBuffer is recorded only. Queued replies model bytes that arrive
// after the request, so they survive a reset.
func (m *MockPort) ResetInputBuffer() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, "reset input")

	return m.ResetErr
}

func (m *MockPort) SetRTS(level bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, fmt.Sprintf("rts %t", level))

	return nil
}

func (m *MockPort) SetDTR(level bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, fmt.Sprintf("dtr %t", level))

	return nil
}

func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, "close")
	m.closed = true

	return nil
}

func (m *MockPort) pop() (mockReply, bool) {
	if len(m.replies) == 0 {
		return mockReply{}, false
	}
	r := m.replies[0]
	m.replies = m.replies[1:]

	return r, true
}
