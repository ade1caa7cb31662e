package frame

import "errors"

var (
	// ErrChecksumMismatch indicates a frame whose trailing checksum does not match its payload.
	ErrChecksumMismatch = errors.New("frame: checksum mismatch")
	// ErrShortFrame indicates a frame shorter than its function's response length.
	ErrShortFrame = errors.New("frame: short frame")
	// ErrMalformed indicates a frame of the right size whose fields cannot be parsed.
	ErrMalformed = errors.New("frame: malformed frame")
	// ErrValueRejected indicates a well-formed write acknowledgement echoing a
	// different value than the one sent: the device refused the write.
	ErrValueRejected = errors.New("frame: value rejected by device")
	// ErrUnknownFunction indicates a Function outside the defined set.
	ErrUnknownFunction = errors.New("frame: unknown function")
)
