package beast

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jet1090go/internal/ingest"
)

// encodeModeSLong builds a single Beast Mode-S-long frame, escaping any
// 0x1A byte in the MLAT/signal/payload section the way a real feed would.
func encodeModeSLong(mlat [6]byte, signal byte, payload [14]byte) []byte {
	body := append(append([]byte{}, mlat[:]...), signal)
	body = append(body, payload[:]...)

	out := []byte{SyncByte, ModeSLong}
	for _, b := range body {
		if b == SyncByte {
			out = append(out, SyncByte)
		}
		out = append(out, b)
	}
	return out
}

func TestReceiverRunDecodesFramesFromTCP(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	connCh := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			connCh <- conn
		}
	}()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := NewReceiver(listener.Addr().String(), "s1", "feed", logger)
	out := make(chan ingest.RawFrame, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go r.Run(ctx, out)

	conn := <-connCh
	defer conn.Close()

	var payload [14]byte
	payload[0] = 0x8D
	frame := encodeModeSLong([6]byte{1, 2, 3, 4, 5, 6}, 200, payload)
	_, err = conn.Write(frame)
	require.NoError(t, err)

	select {
	case got := <-out:
		assert.Equal(t, "s1", got.Metadata.SensorID)
		assert.Equal(t, ingest.TimeSourceRadio, got.TimeSource)
		require.NotNil(t, got.Metadata.RSSI)
		assert.InDelta(t, 200.0/255.0, *got.Metadata.RSSI, 1e-9)
		assert.Equal(t, byte(0x8D), got.Frame[0])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for decoded frame")
	}
}

func TestReceiverRunStopsOnContextCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err == nil {
			defer conn.Close()
			<-make(chan struct{})
		}
	}()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r := NewReceiver(listener.Addr().String(), "s1", "feed", logger)
	out := make(chan ingest.RawFrame, 1)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, out) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}
