package app

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jet1090go/internal/adsb"
	"jet1090go/internal/dedup"
	"jet1090go/internal/ingest"
)

func TestNewApplicationAppliesDefaults(t *testing.T) {
	application := NewApplication(Config{Verbose: true})
	require.NotNil(t, application)
	assert.Equal(t, DefaultDedupWindow, application.config.DedupWindow)
	assert.Equal(t, logrus.DebugLevel, application.logger.Level)
}

func TestNewApplicationDefaultLogLevel(t *testing.T) {
	application := NewApplication(Config{})
	assert.Equal(t, logrus.InfoLevel, application.logger.Level)
}

// TestInitializeComponentsWithoutSensors verifies the component graph
// can be built with no Beast feeds and no aircraft database configured
// (both optional per spec §1/§6.2).
func TestInitializeComponentsWithoutSensors(t *testing.T) {
	application := NewApplication(Config{LogDir: t.TempDir()})
	application.logger.SetOutput(io.Discard)

	err := application.initializeComponents()
	require.NoError(t, err)
	assert.NotNil(t, application.store)
	assert.NotNil(t, application.deduplicator)
	assert.NotNil(t, application.cprDecoder)
	assert.Nil(t, application.aircraftDB)
	assert.Nil(t, application.baseStation)
	assert.Nil(t, application.sink)
}

// TestInitializeComponentsEnablesSinksAndReceivers verifies the
// optional collaborators are wired when their Config flags are set.
func TestInitializeComponentsEnablesSinksAndReceivers(t *testing.T) {
	application := NewApplication(Config{
		LogDir:             t.TempDir(),
		BeastAddrs:         []string{"127.0.0.1:30005"},
		BaseStationEnabled: true,
		JSONLEnabled:       true,
	})
	application.logger.SetOutput(io.Discard)

	err := application.initializeComponents()
	require.NoError(t, err)
	assert.Len(t, application.receivers, 1)
	assert.NotNil(t, application.baseStation)
	assert.NotNil(t, application.sink)
}

// TestHandleFrameUpdatesStoreAndSinks verifies a deduplicated frame is
// decoded and folded into aggregator state, with the JSONL sink
// configured so the publish path runs too.
func TestHandleFrameUpdatesStoreAndSinks(t *testing.T) {
	application := NewApplication(Config{LogDir: t.TempDir(), JSONLEnabled: true})
	application.logger.SetOutput(io.Discard)
	require.NoError(t, application.initializeComponents())

	frame := make([]byte, 7)
	frame[0] = byte(adsb.DFSurveillanceAltitude) << 3
	merged := dedup.Merged{
		Frame:     frame,
		Timestamp: time.Now(),
		Sensors:   []ingest.SensorMetadata{{SensorID: "s1"}},
	}

	application.handleFrame(merged)

	keys := application.store.ICAO24Keys()
	assert.Len(t, keys, 1)
}

// TestExpireLoopRemovesStaleAircraft exercises the expiry task
// directly rather than waiting on its ticker.
func TestExpireLoopRemovesStaleAircraft(t *testing.T) {
	application := NewApplication(Config{LogDir: t.TempDir()})
	application.logger.SetOutput(io.Discard)
	require.NoError(t, application.initializeComponents())

	old := time.Now().Add(-time.Hour)
	application.store.Update(&adsb.Message{
		DF:                   adsb.DFSurveillanceAltitude,
		ICAO24:               0x112233,
		SurveillanceAltitude: &adsb.SurveillanceAltitudeReply{},
		Timestamp:            old,
	}, dedup.Merged{Timestamp: old})

	application.store.Expire(time.Now(), time.Minute, 0)

	_, ok := application.store.Snapshot("112233")
	assert.False(t, ok)
}
