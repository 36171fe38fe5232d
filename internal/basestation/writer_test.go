package basestation

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jet1090go/internal/adsb"
	"jet1090go/internal/aggregator"
	"jet1090go/internal/logging"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	rotator, err := logging.NewLogRotator(t.TempDir(), true, logger)
	require.NoError(t, err)
	t.Cleanup(func() { rotator.Close() })
	return NewWriter(rotator, logger)
}

func TestWriteMessageNilMessage(t *testing.T) {
	w := newTestWriter(t)
	err := w.WriteMessage(nil, aggregator.Snapshot{})
	assert.Error(t, err)
}

func TestConvertMessageAircraftIdentification(t *testing.T) {
	w := newTestWriter(t)
	msg := &adsb.Message{
		DF:        17,
		ICAO24:    0x3c6589,
		Timestamp: time.Now(),
		ADSB: &adsb.ADSBPayload{
			ME: adsb.MEPayload{
				AircraftID: &adsb.AircraftIdentification{Callsign: "KLM123  "},
			},
		},
	}

	base := w.convertMessage(msg, aggregator.Snapshot{})
	require.NotNil(t, base)
	assert.Equal(t, TransmissionESIDCat, base.TransmissionType)
	assert.Equal(t, "KLM123", base.Callsign)
	assert.Equal(t, "3c6589", base.HexIdent)
}

func TestConvertMessageAirbornePositionUsesSnapshotAltitude(t *testing.T) {
	w := newTestWriter(t)
	alt := int32(35000)
	lat, lon := 51.5, -0.1

	msg := &adsb.Message{
		DF:        17,
		ICAO24:    0xabcdef,
		Timestamp: time.Now(),
		ADSB: &adsb.ADSBPayload{
			ME: adsb.MEPayload{
				AirbornePosition: &adsb.AirbornePosition{},
			},
		},
	}
	snap := aggregator.Snapshot{Altitude: &alt, Latitude: &lat, Longitude: &lon}

	base := w.convertMessage(msg, snap)
	require.NotNil(t, base)
	assert.Equal(t, TransmissionESAirborne, base.TransmissionType)
	assert.Equal(t, "35000", base.Altitude)
	assert.Equal(t, "51.500000", base.Latitude)
	assert.Equal(t, "-0.100000", base.Longitude)
}

func TestConvertMessageUnsupportedReturnsNil(t *testing.T) {
	w := newTestWriter(t)
	msg := &adsb.Message{DF: 11, ICAO24: 0x1, Timestamp: time.Now()}
	assert.Nil(t, w.convertMessage(msg, aggregator.Snapshot{}))
}

func TestFormatCSVFieldCount(t *testing.T) {
	w := newTestWriter(t)
	msg := &adsb.Message{
		DF:        17,
		ICAO24:    0x3c6589,
		Timestamp: time.Now(),
		ADSB: &adsb.ADSBPayload{
			ME: adsb.MEPayload{AircraftID: &adsb.AircraftIdentification{Callsign: "TEST01"}},
		},
	}
	base := w.convertMessage(msg, aggregator.Snapshot{})
	require.NotNil(t, base)

	line := w.formatCSV(base)
	assert.True(t, strings.HasPrefix(line, "MSG,1,"))
	assert.Equal(t, 21, strings.Count(line, ",")+0)
}
