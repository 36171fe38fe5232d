package beast

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"jet1090go/internal/ingest"
)

// Receiver is a TCP Beast-format SensorReceiver (spec §1's "Beast TCP
// feed" external collaborator, spec §6.1). It dials Addr, decodes the
// stream with Decoder, and retries with backoff on disconnect until
// ctx is canceled.
type Receiver struct {
	Addr       string
	SensorID   string
	SensorName string
	Logger     *logrus.Logger

	dialTimeout time.Duration
}

// NewReceiver creates a Receiver for the given Beast TCP endpoint.
func NewReceiver(addr, sensorID, sensorName string, logger *logrus.Logger) *Receiver {
	return &Receiver{
		Addr:        addr,
		SensorID:    sensorID,
		SensorName:  sensorName,
		Logger:      logger,
		dialTimeout: 5 * time.Second,
	}
}

// Run implements ingest.SensorReceiver: connect, decode, emit; on
// disconnect, back off and reconnect until ctx is canceled.
func (r *Receiver) Run(ctx context.Context, out chan<- ingest.RawFrame) error {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := r.runOnce(ctx, out); err != nil {
			r.Logger.WithError(err).WithField("addr", r.Addr).Warn("beast: connection lost, retrying")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (r *Receiver) runOnce(ctx context.Context, out chan<- ingest.RawFrame) error {
	dialer := net.Dialer{Timeout: r.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", r.Addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	r.Logger.WithField("addr", r.Addr).Info("beast: connected")

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	decoder := NewDecoder(r.Logger)
	buf := make([]byte, 4096)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			messages, decErr := decoder.Decode(buf[:n])
			if decErr != nil {
				r.Logger.WithError(decErr).Debug("beast: decode error")
			}
			for _, msg := range messages {
				if msg.MessageType != ModeS && msg.MessageType != ModeSLong {
					continue // Mode A/C and status frames carry no Mode S payload
				}
				signal := float64(msg.Signal) / 255.0
				frame := ingest.RawFrame{
					Frame:       msg.Data,
					Timestamp:   msg.Timestamp,
					TimeSource:  ingest.TimeSourceRadio,
					Nanoseconds: int64(msg.MLATRaw),
					Metadata: ingest.SensorMetadata{
						SensorID:   r.SensorID,
						SensorName: r.SensorName,
						Timestamp:  msg.Timestamp,
						RSSI:       &signal,
					},
				}
				select {
				case out <- frame:
				case <-ctx.Done():
					return ctx.Err()
				default:
					r.Logger.Debug("beast: dropped frame, downstream full")
				}
			}
		}
		if err != nil {
			return err
		}
	}
}
