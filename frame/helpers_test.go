package frame

import "encoding/binary"

// bitwiseCRC16 is the shift-register form of the checksum: seed 0xFFFF, XOR each
// byte into the low byte, eight right shifts XOR-ing 0xA001 on a carried-out 1.
func bitwiseCRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for range 8 {
			if crc&1 == 1 {
				crc = (crc >> 1) ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}

	return crc
}

func temperatureResponse(addr byte, target, environ int16) []byte {
	payload := []byte{addr, CodeReadHolding, 0x04, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(payload[3:5], uint16(target))
	binary.BigEndian.PutUint16(payload[5:7], uint16(environ))

	return AppendCRC(payload)
}

func emissivityResponse(addr byte, hundredths byte) []byte {
	return AppendCRC([]byte{addr, CodeReadInput, 0x02, 0x00, hundredths})
}

func writeResponse(register uint16, echo byte) []byte {
	payload := []byte{BroadcastAddress, CodeWriteSingle, 0, 0, 0x00, echo}
	binary.BigEndian.PutUint16(payload[2:4], register)

	return AppendCRC(payload)
}
