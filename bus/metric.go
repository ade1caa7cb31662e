package bus

import (
	"sync/atomic"
)

// Metrics contains atomic counters for one bus.
// Metrics can be used as the value of a prometheus CounterFunc.
type Metrics struct {
	// ExchangeCount indicates the number of exchanges started.
	ExchangeCount atomic.Uint64
	// TransportErrCount indicates the number of exchanges aborted by a port error.
	TransportErrCount atomic.Uint64
	// ShortReadCount indicates the number of truncated or missing responses.
	ShortReadCount atomic.Uint64

	// AttemptCount indicates the number of operation attempts.
	AttemptCount atomic.Uint64
	// FailureCount indicates the number of failed attempts.
	FailureCount atomic.Uint64
	// ChecksumErrCount indicates the number of attempts failed by a checksum mismatch.
	ChecksumErrCount atomic.Uint64
	// RetryCount indicates the number of attempts that followed a failed one.
	RetryCount atomic.Uint64
	// RejectedCount indicates the number of operations ended by a permanent error.
	RejectedCount atomic.Uint64
	// ExhaustedCount indicates the number of operations that used up their attempts.
	ExhaustedCount atomic.Uint64
}

func (m *Metrics) incExchangeCount() {
	m.ExchangeCount.Add(1)
}

func (m *Metrics) incTransportErrCount() {
	m.TransportErrCount.Add(1)
}

func (m *Metrics) incShortReadCount() {
	m.ShortReadCount.Add(1)
}

func (m *Metrics) incAttemptCount() {
	m.AttemptCount.Add(1)
}

func (m *Metrics) incFailureCount() {
	m.FailureCount.Add(1)
}

func (m *Metrics) incChecksumErrCount() {
	m.ChecksumErrCount.Add(1)
}

func (m *Metrics) incRetryCount() {
	m.RetryCount.Add(1)
}

func (m *Metrics) incRejectedCount() {
	m.RejectedCount.Add(1)
}

func (m *Metrics) incExhaustedCount() {
	m.ExhaustedCount.Add(1)
}
