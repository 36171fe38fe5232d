package adsb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTooShort(t *testing.T) {
	_, err := Parse(nil, time.Now())
	assert.ErrorIs(t, err, ErrTooShort)

	_, err = Parse(make([]byte, 3), time.Now())
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestParseTooLong(t *testing.T) {
	frame := make([]byte, 8)
	frame[0] = byte(DFSurveillanceAltitude) << 3
	_, err := Parse(frame, time.Now())
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestParseUnknownDF(t *testing.T) {
	frame := make([]byte, 7)
	frame[0] = 6 << 3 // DF 6 is unassigned
	_, err := Parse(frame, time.Now())
	assert.ErrorIs(t, err, ErrUnknownDF)
}

func TestParseSurveillanceAltitudeRecoversICAO(t *testing.T) {
	frame := make([]byte, 7)
	frame[0] = byte(DFSurveillanceAltitude) << 3
	wantICAO := uint32(0x3c6589)
	parity := wantICAO ^ Checksum(frame[:4])
	frame[4] = byte(parity >> 16)
	frame[5] = byte(parity >> 8)
	frame[6] = byte(parity)

	msg, err := Parse(frame, time.Now())
	require.NoError(t, err)
	assert.Equal(t, DFSurveillanceAltitude, msg.DF)
	assert.Equal(t, "3c6589", msg.ICAOHex())
	require.NotNil(t, msg.SurveillanceAltitude)
}

func TestParseAllCallICAOIsExplicit(t *testing.T) {
	frame := make([]byte, 7)
	frame[0] = byte(DFAllCall) << 3
	frame[1], frame[2], frame[3] = 0xab, 0xcd, 0xef

	msg, err := Parse(frame, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "abcdef", msg.ICAOHex())
	require.NotNil(t, msg.AllCall)
}

func TestParseExtendedSquitterRejectsBadChecksum(t *testing.T) {
	frame := make([]byte, 14)
	frame[0] = byte(DFExtendedSquitter) << 3
	frame[1], frame[2], frame[3] = 0x48, 0x40, 0xd6
	_, err := Parse(frame, time.Now())
	assert.ErrorIs(t, err, ErrBadADSBChecksum)
}

func TestParseExtendedSquitterAircraftIdentification(t *testing.T) {
	frame := make([]byte, 14)
	frame[0] = byte(DFExtendedSquitter)<<3 | 5 // CA=5
	frame[1], frame[2], frame[3] = 0x48, 0x40, 0xd6
	frame[4] = 4 << 3 // typecode 4: aircraft identification
	withValidParity(frame)

	msg, err := Parse(frame, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "17", msg.DF.String())
	assert.Equal(t, "4840d6", msg.ICAOHex())
	require.NotNil(t, msg.ADSB)
	assert.Equal(t, uint8(4), msg.ADSB.TypeCode)
	require.NotNil(t, msg.ADSB.ME.AircraftID)
}

func TestParseCommBRecoversICAOViaLongParity(t *testing.T) {
	frame := make([]byte, 14)
	frame[0] = byte(DFCommBAltitude) << 3
	wantICAO := uint32(0x112233)
	parity := wantICAO ^ Checksum(frame[:11])
	frame[11] = byte(parity >> 16)
	frame[12] = byte(parity >> 8)
	frame[13] = byte(parity)

	msg, err := Parse(frame, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "112233", msg.ICAOHex())
	require.NotNil(t, msg.CommBAltitude)
}

func TestParseCommDDFStringIs24(t *testing.T) {
	frame := make([]byte, 14)
	frame[0] = 24 << 3 // DF 24, lowest Comm-D variant
	msg, err := Parse(frame, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "24", msg.DF.String())
	require.NotNil(t, msg.CommD)
}
