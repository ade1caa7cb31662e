// Package serial provides the byte-exact serial port used by the RS485 drivers.
//
// Port is the boundary the half-duplex transceiver talks to: exact-length reads,
// line reads, write, flush (drain the output buffer) and direct control of the
// RTS and DTR lines that drive the RS485 transceiver direction.
//
// Open returns a Port backed by go.bug.st/serial configured for 8N1 framing.
// MockPort is a scripted, in-memory Port for tests.
package serial
