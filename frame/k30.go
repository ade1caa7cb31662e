package frame

import (
	"encoding/binary"
	"fmt"
)

// K30ResponseLength is the number of bytes read for every K30 request.
const K30ResponseLength = 8

var (
	k30StatusRequest = [RequestLength]byte{0xFE, 0x04, 0x00, 0x00, 0x00, 0x01, 0x25, 0xC5}
	k30CO2Request    = [RequestLength]byte{0xFE, 0x04, 0x00, 0x03, 0x00, 0x01, 0xD5, 0xC5}
)

// K30StatusRequest returns the meter status query.
func K30StatusRequest() []byte {
	b := k30StatusRequest
	return b[:]
}

// K30CO2Request returns the CO2 concentration query.
func K30CO2Request() []byte {
	b := k30CO2Request
	return b[:]
}

// DecodeK30 returns the big-endian value at offsets 3-4 of a K30 response.
//
// With validateCRC set, the checksum trailing the input-register reply is
// checked first. Its position follows the byte count at offset 2.
func DecodeK30(data []byte, validateCRC bool) (uint16, error) {
	if len(data) < K30ResponseLength {
		return 0, fmt.Errorf("%w: K30 expects %d bytes, got %d", ErrShortFrame, K30ResponseLength, len(data))
	}

	if validateCRC {
		n := 3 + int(data[2]) + CRCSize
		if n > len(data) {
			return 0, fmt.Errorf("%w: K30 byte count %d exceeds frame", ErrMalformed, data[2])
		}
		if err := CheckCRC(data[:n]); err != nil {
			return 0, err
		}
	}

	return binary.BigEndian.Uint16(data[3:5]), nil
}
