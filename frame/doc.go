// Package frame encodes requests and validates responses for the three RS485
// sensor protocols handled by go-rs485.
//
// # CRC-framed binary (CT200)
//
// Requests are eight bytes:
//
//	[addr][func][reg_hi][reg_lo][val_hi][val_lo][crc_lo][crc_hi]
//
// The checksum is the reflected CRC-16 with seed 0xFFFF and polynomial 0xA001,
// appended low byte first. The response length is fixed per Function, and a
// response is checked for length and checksum before any field is decoded.
//
// # Fixed binary (K30)
//
// Requests are two precomputed eight-byte frames. Responses are eight bytes with
// a big-endian value at offsets 3-4. Checksum validation is opt-in.
//
// # ASCII line (UX100)
//
// The request is STX followed by "01DRS,01,0001\r\n". The response is a line
// holding four hex digits at offset 10, in tenths of a degree.
package frame
