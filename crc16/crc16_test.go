package crc16

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceChecksum is an unoptimised bit-by-bit CRC-16/CCITT, used to
// cross-check the table-driven implementation.
func referenceChecksum(data []byte) uint16 {
	crc := uint16(initialValue)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ polynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func TestChecksumMatchesReference(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0xFF},
		[]byte("123456789"),
		[]byte("The quick brown fox jumps over the lazy dog"),
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A},
	}

	for _, data := range cases {
		require.Equal(t, referenceChecksum(data), Checksum(data))
	}
}

func TestChecksumKnownVector(t *testing.T) {
	// CRC-16/CCITT-FALSE reference vector for "123456789".
	require.Equal(t, uint16(0x29B1), Checksum([]byte("123456789")))
}

func TestChecksumSensitiveToOrderAndValue(t *testing.T) {
	require.NotEqual(t, Checksum([]byte{1, 2, 3}), Checksum([]byte{3, 2, 1}))
	require.NotEqual(t, Checksum([]byte{1, 2, 3}), Checksum([]byte{1, 2, 4}))
}
