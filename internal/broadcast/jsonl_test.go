package broadcast

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jet1090go/internal/logging"
)

func newTestJSONLSink(t *testing.T) (*JSONLSink, string) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	dir := t.TempDir()
	rotator, err := logging.NewLogRotator(dir, true, logger)
	require.NoError(t, err)
	t.Cleanup(func() { rotator.Close() })
	return NewJSONLSink(rotator), dir
}

func TestJSONLSinkPublishAppendsLine(t *testing.T) {
	sink, dir := newTestJSONLSink(t)

	require.NoError(t, sink.Publish(Event{Frame: "deadbeef", DF: "17", ICAO24: "3c6589"}))
	require.NoError(t, sink.Publish(Event{Frame: "cafef00d", DF: "20", ICAO24: "abcdef"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var lines []string
	for _, b := range splitLines(data) {
		if len(b) > 0 {
			lines = append(lines, string(b))
		}
	}
	require.Len(t, lines, 2)

	var first Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "deadbeef", first.Frame)

	var second Event
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "abcdef", second.ICAO24)
}

func TestJSONLSinkCloseIsNoop(t *testing.T) {
	sink, _ := newTestJSONLSink(t)
	assert.NoError(t, sink.Close())
}

func splitLines(data []byte) [][]byte {
	var out [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			out = append(out, data[start:i])
			start = i + 1
		}
	}
	return out
}
