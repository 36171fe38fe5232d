// Package basestation renders decoded traffic as dump1090-style SBS
// ("BaseStation") CSV lines, the wire format spec §6.3 names as the
// optional legacy sink next to JSON/websocket broadcast.
package basestation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"jet1090go/internal/adsb"
	"jet1090go/internal/aggregator"
	"jet1090go/internal/logging"
)

// BaseStation message types
const (
	SEL = "SEL" // Selection Change
	ID  = "ID"  // New ID
	AIR = "AIR" // New Aircraft
	STA = "STA" // Status Change
	CLK = "CLK" // Click
	MSG = "MSG" // Transmission
)

// BaseStation transmission types
const (
	TransmissionESIDCat      = 1 // Extended Squitter Aircraft ID and Category
	TransmissionESSurface    = 2 // Extended Squitter Surface Position
	TransmissionESAirborne   = 3 // Extended Squitter Airborne Position
	TransmissionESVelocity   = 4 // Extended Squitter Airborne Velocity
	TransmissionSurveillance = 5 // Surveillance Alt, Squawk change
	TransmissionAllCall      = 8 // All Call Reply
)

// Message represents a BaseStation format message
type Message struct {
	MessageType      string
	TransmissionType int
	SessionID        int
	AircraftID       int
	HexIdent         string
	FlightID         int
	DateGenerated    time.Time
	TimeGenerated    time.Time
	DateLogged       time.Time
	TimeLogged       time.Time
	Callsign         string
	Altitude         string
	GroundSpeed      string
	Track            string
	Latitude         string
	Longitude        string
	VerticalRate     string
	Squawk           string
	Alert            string
	Emergency        string
	SPI              string
	IsOnGround       string
}

// Writer writes decoded messages in BaseStation format, using each
// message's already-decoded fields and the aircraft's current folded
// Snapshot rather than re-deriving values from raw bits (that decode
// belongs to internal/adsb and internal/aggregator, not this sink).
type Writer struct {
	logRotator *logging.LogRotator
	logger     *logrus.Logger
	sessionID  int
	aircraftID int
}

// NewWriter creates a new BaseStation writer.
func NewWriter(logRotator *logging.LogRotator, logger *logrus.Logger) *Writer {
	return &Writer{
		logRotator: logRotator,
		logger:     logger,
		sessionID:  1,
		aircraftID: 1,
	}
}

// WriteMessage converts a decoded message plus its aircraft's current
// snapshot into a BaseStation CSV line and appends it to the active
// log file. Message types with no BaseStation equivalent are silently
// skipped with a nil error, matching dump1090's own behavior.
func (w *Writer) WriteMessage(msg *adsb.Message, snap aggregator.Snapshot) error {
	if msg == nil {
		return fmt.Errorf("message cannot be nil")
	}

	baseMsg := w.convertMessage(msg, snap)
	if baseMsg == nil {
		return nil
	}

	csvLine := w.formatCSV(baseMsg)

	writer, err := w.logRotator.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to get log writer: %w", err)
	}
	if _, err := writer.Write([]byte(csvLine + "\n")); err != nil {
		return fmt.Errorf("failed to write to log: %w", err)
	}

	return nil
}

// convertMessage builds a BaseStation Message from a decoded frame and
// the folded state of the aircraft that sent it.
func (w *Writer) convertMessage(msg *adsb.Message, snap aggregator.Snapshot) *Message {
	now := time.Now()

	base := &Message{
		MessageType:   MSG,
		SessionID:     w.sessionID,
		AircraftID:    w.aircraftID,
		FlightID:      w.aircraftID,
		HexIdent:      msg.ICAOHex(),
		DateGenerated: msg.Timestamp,
		TimeGenerated: msg.Timestamp,
		DateLogged:    now,
		TimeLogged:    now,
	}

	switch {
	case msg.SurveillanceAltitude != nil:
		base.TransmissionType = TransmissionSurveillance
		if msg.SurveillanceAltitude.Altitude != nil {
			base.Altitude = strconv.Itoa(int(*msg.SurveillanceAltitude.Altitude))
		}

	case msg.SurveillanceIdentity != nil:
		base.TransmissionType = TransmissionSurveillance
		base.Squawk = msg.SurveillanceIdentity.Squawk

	case msg.AllCall != nil:
		base.TransmissionType = TransmissionAllCall

	case msg.ADSB != nil:
		w.fillFromME(base, &msg.ADSB.ME, snap)
	case msg.TISB != nil:
		w.fillFromME(base, &msg.TISB.ME, snap)

	case msg.CommBAltitude != nil:
		base.TransmissionType = TransmissionSurveillance
		if snap.Altitude != nil {
			base.Altitude = strconv.Itoa(int(*snap.Altitude))
		}
	case msg.CommBIdentity != nil:
		base.TransmissionType = TransmissionSurveillance
		base.Squawk = snap.Squawk

	default:
		return nil
	}

	if snap.Latitude != nil && snap.Longitude != nil {
		base.Latitude = fmt.Sprintf("%.6f", *snap.Latitude)
		base.Longitude = fmt.Sprintf("%.6f", *snap.Longitude)
	}

	return base
}

// fillFromME fills in the BaseStation fields specific to an ADS-B/TIS-B
// ME payload, matching dump1090's typecode-to-transmission-type table.
func (w *Writer) fillFromME(base *Message, me *adsb.MEPayload, snap aggregator.Snapshot) {
	switch {
	case me.AircraftID != nil:
		base.TransmissionType = TransmissionESIDCat
		base.Callsign = strings.TrimRight(me.AircraftID.Callsign, " ")

	case me.SurfacePosition != nil:
		base.TransmissionType = TransmissionESSurface
		base.IsOnGround = "1"
		if snap.GroundSpeed != nil {
			base.GroundSpeed = fmt.Sprintf("%.0f", *snap.GroundSpeed)
		}
		if snap.Track != nil {
			base.Track = fmt.Sprintf("%.1f", *snap.Track)
		}

	case me.AirbornePosition != nil:
		base.TransmissionType = TransmissionESAirborne
		if snap.Altitude != nil {
			base.Altitude = strconv.Itoa(int(*snap.Altitude))
		}

	case me.Velocity != nil:
		base.TransmissionType = TransmissionESVelocity
		if snap.GroundSpeed != nil {
			base.GroundSpeed = fmt.Sprintf("%.0f", *snap.GroundSpeed)
		}
		if snap.Track != nil {
			base.Track = fmt.Sprintf("%.1f", *snap.Track)
		}
		if snap.VerticalRate != nil {
			base.VerticalRate = strconv.Itoa(int(*snap.VerticalRate))
		}

	case me.Status != nil:
		base.TransmissionType = TransmissionSurveillance
		base.Squawk = snap.Squawk

	case me.TargetState != nil, me.OperationStatus != nil:
		base.TransmissionType = TransmissionSurveillance
	}
}

// formatCSV formats a BaseStation message as CSV.
func (w *Writer) formatCSV(msg *Message) string {
	fields := []string{
		msg.MessageType,
		strconv.Itoa(msg.TransmissionType),
		strconv.Itoa(msg.SessionID),
		strconv.Itoa(msg.AircraftID),
		msg.HexIdent,
		strconv.Itoa(msg.FlightID),
		msg.DateGenerated.Format("2006/01/02"),
		msg.TimeGenerated.Format("15:04:05.000"),
		msg.DateLogged.Format("2006/01/02"),
		msg.TimeLogged.Format("15:04:05.000"),
		msg.Callsign,
		msg.Altitude,
		msg.GroundSpeed,
		msg.Track,
		msg.Latitude,
		msg.Longitude,
		msg.VerticalRate,
		msg.Squawk,
		msg.Alert,
		msg.Emergency,
		msg.SPI,
		msg.IsOnGround,
	}

	return strings.Join(fields, ",")
}
