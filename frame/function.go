package frame

import (
	"encoding/binary"
	"fmt"
)

// BroadcastAddress addresses every CT200 on the bus. Writes use it, so only
// one device may be connected while they run.
const BroadcastAddress byte = 0xFF

// Function identifies a CT200 request.
type Function uint8

const (
	// ReadTemperature reads target and environment temperature (register 0x04B0, two words).
	ReadTemperature Function = iota + 1
	// ReadEmissivity reads the configured emissivity (register 0x0320, one word).
	ReadEmissivity
	// WriteID writes a new device address (register 0x03E8).
	WriteID
	// WriteEmissivity writes the emissivity in hundredths (register 0x0320).
	WriteEmissivity
)

// Wire function codes.
const (
	CodeReadHolding byte = 0x03
	CodeReadInput   byte = 0x04
	CodeWriteSingle byte = 0x06
)

// Register addresses.
const (
	RegTemperature uint16 = 0x04B0
	RegEmissivity  uint16 = 0x0320
	RegDeviceID    uint16 = 0x03E8
)

// Register counts sent with read requests.
const (
	TemperatureWords uint16 = 0x0002
	EmissivityWords  uint16 = 0x0001
)

// RequestLength is the size of every CT200 request frame.
const RequestLength = 8

// Valid reports whether f is one of the defined functions.
func (f Function) Valid() bool {
	return f >= ReadTemperature && f <= WriteEmissivity
}

// Code returns the wire function code, or 0 for an unknown function.
func (f Function) Code() byte {
	switch f {
	case ReadTemperature:
		return CodeReadHolding
	case ReadEmissivity:
		return CodeReadInput
	case WriteID, WriteEmissivity:
		return CodeWriteSingle
	default:
		return 0
	}
}

// Register returns the register address the function targets.
func (f Function) Register() uint16 {
	switch f {
	case ReadTemperature:
		return RegTemperature
	case ReadEmissivity, WriteEmissivity:
		return RegEmissivity
	case WriteID:
		return RegDeviceID
	default:
		return 0
	}
}

// ResponseLength returns the response size in bytes, checksum included.
func (f Function) ResponseLength() int {
	switch f {
	case ReadTemperature:
		return 9
	case ReadEmissivity:
		return 7
	case WriteID, WriteEmissivity:
		return 8
	default:
		return 0
	}
}

// IsWrite reports whether the response is a write acknowledgement.
func (f Function) IsWrite() bool {
	return f == WriteID || f == WriteEmissivity
}

func (f Function) String() string {
	switch f {
	case ReadTemperature:
		return "ReadTemperature"
	case ReadEmissivity:
		return "ReadEmissivity"
	case WriteID:
		return "WriteID"
	case WriteEmissivity:
		return "WriteEmissivity"
	default:
		return fmt.Sprintf("Function(%d)", uint8(f))
	}
}

// Encode builds a request frame with its checksum.
func Encode(addr byte, code byte, register uint16, value uint16) []byte {
	buf := make([]byte, 6, RequestLength)
	buf[0] = addr
	buf[1] = code
	binary.BigEndian.PutUint16(buf[2:4], register)
	binary.BigEndian.PutUint16(buf[4:6], value)

	return AppendCRC(buf)
}

// NewRequest builds the request frame of fn addressed to addr.
// For reads value is the register count, for writes the value to store.
func NewRequest(addr byte, fn Function, value uint16) ([]byte, error) {
	if !fn.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFunction, uint8(fn))
	}

	return Encode(addr, fn.Code(), fn.Register(), value), nil
}

// TemperatureRequest returns the ReadTemperature request for addr.
func TemperatureRequest(addr byte) []byte {
	return Encode(addr, CodeReadHolding, RegTemperature, TemperatureWords)
}

// EmissivityRequest returns the ReadEmissivity request for addr.
func EmissivityRequest(addr byte) []byte {
	return Encode(addr, CodeReadInput, RegEmissivity, EmissivityWords)
}

// WriteIDRequest returns the broadcast request assigning newID.
func WriteIDRequest(newID byte) []byte {
	return Encode(BroadcastAddress, CodeWriteSingle, RegDeviceID, uint16(newID))
}

// WriteEmissivityRequest returns the broadcast request storing hundredths.
func WriteEmissivityRequest(hundredths byte) []byte {
	return Encode(BroadcastAddress, CodeWriteSingle, RegEmissivity, uint16(hundredths))
}

// Fields holds the decoded content of a validated CT200 response.
// Only the fields belonging to Function are set.
type Fields struct {
	Address  byte
	Function Function

	// Target and Environ are in degrees, set for ReadTemperature.
	Target  float64
	Environ float64
	// Emissivity is set for ReadEmissivity.
	Emissivity float64
	// Echo is the value byte echoed by a write acknowledgement.
	Echo byte
}

// CheckEcho compares the echoed value with the value byte of the request.
func (f Fields) CheckEcho(sent byte) error {
	if f.Echo != sent {
		return fmt.Errorf("%w: %s sent 0x%02X, echoed 0x%02X", ErrValueRejected, f.Function, sent, f.Echo)
	}

	return nil
}

// CheckAddress rejects a response that came from a device other than addr.
func (f Fields) CheckAddress(addr byte) error {
	if f.Address != addr {
		return fmt.Errorf("%w: %s answered by 0x%02X, requested 0x%02X", ErrMalformed, f.Function, f.Address, addr)
	}

	return nil
}

// Decode validates a response frame of fn and decodes its fields.
// A frame carrying another function code is malformed.
func Decode(fn Function, data []byte) (Fields, error) {
	n := fn.ResponseLength()
	if n == 0 {
		return Fields{}, fmt.Errorf("%w: %d", ErrUnknownFunction, uint8(fn))
	}
	if len(data) < n {
		return Fields{}, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrShortFrame, fn, n, len(data))
	}
	if len(data) > n {
		return Fields{}, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrMalformed, fn, n, len(data))
	}
	if err := CheckCRC(data); err != nil {
		return Fields{}, err
	}

	payload := data[:n-CRCSize]
	if payload[1] != fn.Code() {
		return Fields{}, fmt.Errorf("%w: %s expects function code 0x%02X, got 0x%02X", ErrMalformed, fn, fn.Code(), payload[1])
	}
	fields := Fields{Address: payload[0], Function: fn}

	switch fn {
	case ReadTemperature:
		fields.Target = tenths(payload[3:5])
		fields.Environ = tenths(payload[5:7])
	case ReadEmissivity:
		fields.Emissivity = float64(payload[4]) / 100.0
	case WriteID, WriteEmissivity:
		fields.Echo = payload[5]
	}

	return fields, nil
}

func tenths(b []byte) float64 {
	return float64(int16(binary.BigEndian.Uint16(b))) / 10.0
}
