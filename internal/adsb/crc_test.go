package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// withValidParity patches the trailing 3 bytes of frame so the whole
// frame's CRC-24 residue is zero: the checksum over the message bytes
// without the parity field is exactly the parity whose insertion makes
// the codeword divide evenly by the generator.
func withValidParity(frame []byte) []byte {
	sum := Checksum(frame[:len(frame)-3])
	n := len(frame)
	frame[n-3] = byte(sum >> 16)
	frame[n-2] = byte(sum >> 8)
	frame[n-1] = byte(sum)
	return frame
}

func TestChecksumZeroMessageIsZero(t *testing.T) {
	assert.Equal(t, uint32(0), Checksum(make([]byte, 14)))
}

func TestWithValidParityProducesZeroResidue(t *testing.T) {
	frame := []byte{0x8D, 0x48, 0x40, 0xD6, 0x20, 0x2C, 0xC3, 0x71, 0xC3, 0x2C, 0xE0, 0, 0, 0}
	withValidParity(frame)
	assert.Equal(t, uint32(0), Checksum(frame))
}

func TestChecksumFlippedBitIsNonZero(t *testing.T) {
	frame := []byte{0x8D, 0x48, 0x40, 0xD6, 0x20, 0x2C, 0xC3, 0x71, 0xC3, 0x2C, 0xE0, 0, 0, 0}
	withValidParity(frame)
	frame[4] ^= 0x01
	assert.NotEqual(t, uint32(0), Checksum(frame))
}
