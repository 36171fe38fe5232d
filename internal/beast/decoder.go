package beast

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Decoder decodes Beast mode messages (spec §6.1's Radarcape/Beast
// binary format): 0x1A sync, type byte, 6-byte MLAT timestamp, 1-byte
// signal, payload. A literal 0x1A inside the timestamp/signal/payload
// is doubled on the wire; the decoder collapses it back to one byte
// while scanning, rather than slicing a fixed-width window before
// unescaping, since an escaped frame's wire length varies with how
// many 0x1A bytes its payload happens to contain.
type Decoder struct {
	logger *logrus.Logger
	buffer []byte
}

// NewDecoder creates a new Beast decoder.
func NewDecoder(logger *logrus.Logger) *Decoder {
	return &Decoder{
		logger: logger,
		buffer: make([]byte, 0, 4096),
	}
}

// payloadLength returns the unescaped payload length for a Beast
// message type, or false if the type byte is unrecognized.
func payloadLength(messageType byte) (int, bool) {
	switch messageType {
	case ModeAC, ModeStatus:
		return 2, true
	case ModeS:
		return 7, true
	case ModeSLong:
		return 14, true
	default:
		return 0, false
	}
}

// Decode decodes as many complete Beast messages as the accumulated
// buffer contains, retaining any trailing partial message for the next
// call.
func (d *Decoder) Decode(data []byte) ([]*Message, error) {
	d.buffer = append(d.buffer, data...)

	var messages []*Message

	for {
		start := indexByte(d.buffer, SyncByte)
		if start == -1 {
			d.buffer = d.buffer[:0]
			break
		}
		if start > 0 {
			d.buffer = d.buffer[start:]
		}
		if len(d.buffer) < 2 {
			break // wait for the type byte
		}

		messageType := d.buffer[1]
		need, ok := payloadLength(messageType)
		if !ok {
			d.logger.WithField("message_type", fmt.Sprintf("0x%02x", messageType)).Debug("beast: unknown message type, resyncing")
			d.buffer = d.buffer[1:]
			continue
		}
		need += 6 + 1 // MLAT timestamp + signal byte

		logical := make([]byte, 0, need)
		i := 2
		resync := false
		for i < len(d.buffer) && len(logical) < need {
			b := d.buffer[i]
			if b == SyncByte {
				if i+1 >= len(d.buffer) {
					break // need one more byte to disambiguate escape vs. new frame
				}
				if d.buffer[i+1] == SyncByte {
					logical = append(logical, SyncByte)
					i += 2
					continue
				}
				resync = true
				break
			}
			logical = append(logical, b)
			i++
		}

		if resync {
			d.logger.Debug("beast: lone sync byte mid-frame, resyncing")
			d.buffer = d.buffer[1:]
			continue
		}
		if len(logical) < need {
			break // incomplete message, wait for more data
		}

		raw := make([]byte, i)
		copy(raw, d.buffer[:i])

		msg := d.decodeLogical(messageType, logical, raw)
		messages = append(messages, msg)
		d.buffer = d.buffer[i:]
	}

	if len(d.buffer) > 4096 {
		d.logger.WithField("buffer_size", len(d.buffer)).Warn("beast: buffer overflow without a complete frame, dropping")
		d.buffer = d.buffer[:0]
	}

	return messages, nil
}

func indexByte(buf []byte, b byte) int {
	for i, v := range buf {
		if v == b {
			return i
		}
	}
	return -1
}

// decodeLogical builds a Message from the unescaped timestamp+signal+
// payload bytes of one frame.
func (d *Decoder) decodeLogical(messageType byte, logical, raw []byte) *Message {
	var mlat uint64
	for i := 0; i < 6; i++ {
		mlat = (mlat << 8) | uint64(logical[i])
	}
	signal := logical[6]
	payload := append([]byte(nil), logical[7:]...)

	return &Message{
		MessageType: messageType,
		Timestamp:   decodeMLAT(mlat, time.Now()),
		MLATRaw:     mlat,
		Signal:      signal,
		Data:        payload,
		Raw:         raw,
	}
}

// decodeMLAT interprets the 48-bit MLAT counter per spec §6.1: when its
// high 18 bits are non-zero, it is a GNSS timestamp encoded as
// (seconds_since_UTC_midnight << 30) | nanoseconds. Otherwise it is a
// free-running counter with no absolute epoch this decoder can
// recover, so the host's receipt time (now) is used instead.
func decodeMLAT(raw uint64, now time.Time) time.Time {
	if raw>>30 == 0 {
		return now
	}
	secondsSinceMidnight := raw >> 30
	nanos := raw & ((1 << 30) - 1)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(secondsSinceMidnight)*time.Second + time.Duration(nanos)*time.Nanosecond)
}
