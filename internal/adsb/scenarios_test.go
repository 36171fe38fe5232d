package adsb

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, hexFrame string) *Message {
	t.Helper()
	data, err := hex.DecodeString(hexFrame)
	require.NoError(t, err)
	msg, err := Parse(data, time.Now())
	require.NoError(t, err)
	return msg
}

// TestScenarioAirbornePositionGlobalCPR covers the reference
// even/odd BDS 0,5 pair: global CPR decode should converge near
// 49.8176N, 6.0844E.
func TestScenarioAirbornePositionGlobalCPR(t *testing.T) {
	even := mustParse(t, "8D40058B58C901375147EFD09357")
	odd := mustParse(t, "8D40058B58C904A87F402D3B8C59")
	require.NotNil(t, even.ADSB.ME.AirbornePosition)
	require.NotNil(t, odd.ADSB.ME.AirbornePosition)

	decoder := NewCPRDecoder()
	icao := even.ICAO24

	decoder.Decode(icao, even.ADSB.ME.AirbornePosition.CPR, nil)
	pos, ok := decoder.Decode(icao, odd.ADSB.ME.AirbornePosition.CPR, nil)
	require.True(t, ok)
	assert.InDelta(t, 49.8176, pos.Latitude, 0.01)
	assert.InDelta(t, 6.0844, pos.Longitude, 0.01)
}

// TestScenarioAirbornePositionLocalCPR covers local decode against a
// reference near Luxembourg.
func TestScenarioAirbornePositionLocalCPR(t *testing.T) {
	msg := mustParse(t, "8D40058B58C901375147EFD09357")
	require.NotNil(t, msg.ADSB.ME.AirbornePosition)

	decoder := NewCPRDecoder()
	ref := &Position{Latitude: 49.0, Longitude: 6.0}

	pos, ok := decoder.Decode(msg.ICAO24, msg.ADSB.ME.AirbornePosition.CPR, ref)
	require.True(t, ok)
	assert.InDelta(t, 49.8241, pos.Latitude, 0.01)
	assert.InDelta(t, 6.0679, pos.Longitude, 0.01)
}

// TestScenarioSurfacePosition covers BDS 0,6: track and groundspeed.
func TestScenarioSurfacePosition(t *testing.T) {
	msg := mustParse(t, "8c4841753a9a153237aef0f275be")
	require.NotNil(t, msg.ADSB.ME.SurfacePosition)

	sp := msg.ADSB.ME.SurfacePosition
	require.NotNil(t, sp.Track)
	require.NotNil(t, sp.GroundSpeed)
	assert.InDelta(t, 92.8125, *sp.Track, 0.01)
	assert.InDelta(t, 17, *sp.GroundSpeed, 0.5)
}

// TestScenarioAircraftIdentification covers BDS 0,8: callsign and
// wake-vortex category.
func TestScenarioAircraftIdentification(t *testing.T) {
	msg := mustParse(t, "8D406B902015A678D4D220AA4BDA")
	require.NotNil(t, msg.ADSB.ME.AircraftID)

	assert.Equal(t, "406b90", msg.ICAOHex())
	assert.Equal(t, "EZY85MH", msg.ADSB.ME.AircraftID.Callsign)
	assert.Equal(t, "No category information", msg.ADSB.ME.AircraftID.WakeVortex)
}

// TestScenarioAirborneVelocityGroundSpeed covers BDS 0,9 subtype 1:
// groundspeed/track/vertical-rate/GNSS-baro delta.
func TestScenarioAirborneVelocityGroundSpeed(t *testing.T) {
	msg := mustParse(t, "8D485020994409940838175B284F")
	require.NotNil(t, msg.ADSB.ME.Velocity)

	v := msg.ADSB.ME.Velocity
	require.NotNil(t, v.GroundSpeed)
	require.NotNil(t, v.Track)
	require.NotNil(t, v.VerticalRate)
	require.NotNil(t, v.GeoMinusBaro)

	assert.InDelta(t, 159, *v.GroundSpeed, 1)
	assert.InDelta(t, 182.88, *v.Track, 0.1)
	assert.Equal(t, int16(-832), *v.VerticalRate)
	assert.Equal(t, int16(550), *v.GeoMinusBaro)
}

// TestScenarioCommBTrackAndTurn covers BDS 5,0 via DF=20.
func TestScenarioCommBTrackAndTurn(t *testing.T) {
	msg := mustParse(t, "a000139381951536e024d4ccf6b5")
	require.NotNil(t, msg.CommBAltitude)
	require.NotNil(t, msg.CommBAltitude.BDS50)

	r := msg.CommBAltitude.BDS50
	require.NotNil(t, r.RollAngle)
	require.NotNil(t, r.TrackAngle)
	require.NotNil(t, r.GroundSpeed)
	require.NotNil(t, r.TrueAirspeed)
	require.NotNil(t, r.TrackRate)

	assert.InDelta(t, 2.1, *r.RollAngle, 0.5)
	assert.InDelta(t, 114.26, *r.TrackAngle, 0.5)
	assert.InDelta(t, 438, *r.GroundSpeed, 2)
	assert.InDelta(t, 424, *r.TrueAirspeed, 2)
	assert.InDelta(t, 0.125, *r.TrackRate, 0.05)
}

// TestScenarioCommBHeadingAndSpeed covers BDS 6,0 via DF=21.
func TestScenarioCommBHeadingAndSpeed(t *testing.T) {
	msg := mustParse(t, "a80004aaa74a072bfdefc1d5cb4f")
	require.NotNil(t, msg.CommBIdentity)
	require.NotNil(t, msg.CommBIdentity.BDS60)

	r := msg.CommBIdentity.BDS60
	require.NotNil(t, r.MagneticHeading)
	require.NotNil(t, r.IndicatedAirspeed)
	require.NotNil(t, r.Mach)
	require.NotNil(t, r.BarometricAltitudeRate)
	require.NotNil(t, r.InertialVerticalVelocity)

	assert.InDelta(t, 110.39, *r.MagneticHeading, 0.5)
	assert.Equal(t, uint16(259), *r.IndicatedAirspeed)
	assert.InDelta(t, 0.7, *r.Mach, 0.02)
	assert.InDelta(t, -2144, *r.BarometricAltitudeRate, 50)
	assert.InDelta(t, -2016, *r.InertialVerticalVelocity, 50)
}

// TestScenarioInvalidADSBChecksumRejected covers the spec's negative
// case: a DF=17 frame with a deliberately broken CRC is rejected.
func TestScenarioInvalidADSBChecksumRejected(t *testing.T) {
	data, err := hex.DecodeString("8d4ca251204994b1c36e60a5343d")
	require.NoError(t, err)

	_, err = Parse(data, time.Now())
	assert.ErrorIs(t, err, ErrBadADSBChecksum)
}
