package frame

import (
	"fmt"

	"github.com/sigurn/crc16"
)

// CRCSize is the number of checksum bytes trailing a CRC-framed frame.
const CRCSize = 2

// The CT200 checksum is CRC-16/MODBUS: seed 0xFFFF, reflected polynomial 0xA001.
var crcTable = crc16.MakeTable(crc16.CRC16_MODBUS)

// CRC16 returns the checksum of data.
func CRC16(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}

// AppendCRC appends the checksum of data to data, low byte first.
func AppendCRC(data []byte) []byte {
	crc := CRC16(data)
	return append(data, byte(crc), byte(crc>>8))
}

// CheckCRC validates the trailing checksum of a frame.
func CheckCRC(data []byte) error {
	if len(data) < CRCSize+1 {
		return fmt.Errorf("%w: %d bytes", ErrShortFrame, len(data))
	}

	payload := data[:len(data)-CRCSize]
	wire := uint16(data[len(data)-2]) | uint16(data[len(data)-1])<<8
	computed := CRC16(payload)
	if wire != computed {
		return fmt.Errorf("%w: wire=0x%04X, computed=0x%04X", ErrChecksumMismatch, wire, computed)
	}

	return nil
}
