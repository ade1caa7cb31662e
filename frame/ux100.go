package frame

import (
	"fmt"
	"strconv"
)

// STX starts every UX100 request.
const STX byte = 0x02

const (
	ux100Command     = "01DRS,01,0001\r\n"
	ux100ValueOffset = 10
	ux100ValueDigits = 4
)

// UX100Request returns the process value query.
func UX100Request() []byte {
	return append([]byte{STX}, ux100Command...)
}

// DecodeUX100 parses the process value of a UX100 response line, in degrees.
// The four hex digits are read as a signed 16-bit count of tenths.
func DecodeUX100(line []byte) (float64, error) {
	end := ux100ValueOffset + ux100ValueDigits
	if len(line) < end {
		return 0, fmt.Errorf("%w: UX100 line has %d bytes, need %d", ErrShortFrame, len(line), end)
	}

	digits := string(line[ux100ValueOffset:end])
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: UX100 value %q", ErrMalformed, digits)
	}

	return float64(int16(v)) / 10.0, nil
}
