package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestK30Requests_CarryValidCRC(t *testing.T) {
	require.NoError(t, CheckCRC(K30StatusRequest()))
	require.NoError(t, CheckCRC(K30CO2Request()))
	assert.Equal(t, Encode(0xFE, CodeReadInput, 0x0003, 0x0001), K30CO2Request())
}

func TestK30Requests_Immutable(t *testing.T) {
	req := K30CO2Request()
	req[0] = 0x00
	assert.Equal(t, byte(0xFE), K30CO2Request()[0])
}

func TestDecodeK30(t *testing.T) {
	resp := append(AppendCRC([]byte{0xFE, 0x04, 0x02, 0x01, 0x90}), 0x00)

	v, err := DecodeK30(resp, false)
	require.NoError(t, err)
	assert.Equal(t, uint16(400), v)

	v, err = DecodeK30(resp, true)
	require.NoError(t, err)
	assert.Equal(t, uint16(400), v)
}

func TestDecodeK30_CRCOptIn(t *testing.T) {
	resp := append(AppendCRC([]byte{0xFE, 0x04, 0x02, 0x01, 0x90}), 0x00)
	resp[5] ^= 0xFF

	v, err := DecodeK30(resp, false)
	require.NoError(t, err)
	assert.Equal(t, uint16(400), v)

	_, err = DecodeK30(resp, true)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecodeK30_Invalid(t *testing.T) {
	_, err := DecodeK30([]byte{0xFE, 0x04, 0x02}, false)
	require.ErrorIs(t, err, ErrShortFrame)

	_, err = DecodeK30([]byte{0xFE, 0x04, 0x10, 0, 0, 0, 0, 0}, true)
	require.ErrorIs(t, err, ErrMalformed)
}
