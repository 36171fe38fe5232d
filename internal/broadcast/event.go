// Package broadcast turns decoded messages into the streaming output
// record spec §6.4 defines, and provides two concrete sinks for it: a
// websocket fan-out hub and a rotating .jsonl file sink (§6.5).
package broadcast

import (
	"encoding/hex"
	"encoding/json"

	"jet1090go/internal/adsb"
	"jet1090go/internal/ingest"
)

// Broadcaster is the output-stream collaborator boundary (spec §6.4):
// a post-dedup decoded Message is published once per event, regardless
// of how many concrete sinks are attached behind the implementation.
type Broadcaster interface {
	Publish(evt Event) error
	Close() error
}

// Event is the JSON record shape spec §6.4 requires: timestamp, hex
// frame, a DF string tag, decoded fields, and per-sensor metadata.
type Event struct {
	Timestamp float64                `json:"timestamp"`
	Frame     string                 `json:"frame"`
	DF        string                 `json:"df"`
	BDS       string                 `json:"bds,omitempty"`
	ICAO24    string                 `json:"icao24"`
	Decoded   interface{}            `json:"decoded,omitempty"`
	Metadata  []ingest.SensorMetadata `json:"metadata"`
}

// NewEvent builds an Event from a decoded Message and the sensor
// metadata its deduplicated frame carried.
func NewEvent(msg *adsb.Message, sensors []ingest.SensorMetadata) Event {
	evt := Event{
		Timestamp: float64(msg.Timestamp.UnixNano()) / 1e9,
		Frame:     hex.EncodeToString(msg.Raw),
		DF:        msg.DF.String(),
		ICAO24:    msg.ICAOHex(),
		Metadata:  sensors,
	}

	switch {
	case msg.ShortAirAir != nil:
		evt.Decoded = msg.ShortAirAir
	case msg.SurveillanceAltitude != nil:
		evt.Decoded = msg.SurveillanceAltitude
	case msg.SurveillanceIdentity != nil:
		evt.Decoded = msg.SurveillanceIdentity
	case msg.AllCall != nil:
		evt.Decoded = msg.AllCall
	case msg.LongAirAir != nil:
		evt.Decoded = msg.LongAirAir
	case msg.ADSB != nil:
		evt.Decoded = msg.ADSB
	case msg.TISB != nil:
		evt.Decoded = msg.TISB
	case msg.MilitaryES != nil:
		evt.Decoded = msg.MilitaryES
	case msg.CommBAltitude != nil:
		evt.Decoded = msg.CommBAltitude
		evt.BDS = commBDS(msg.CommBAltitude)
	case msg.CommBIdentity != nil:
		evt.Decoded = msg.CommBIdentity
		evt.BDS = commBDS(msg.CommBIdentity)
	case msg.CommD != nil:
		evt.Decoded = msg.CommD
	}

	return evt
}

// commBDS reports the first populated register tag in a speculative
// Comm-B parse, matching spec §6.4's "bds" selector convention.
func commBDS(payload *adsb.CommBPayload) string {
	switch {
	case payload.BDS10 != nil:
		return "10"
	case payload.BDS17 != nil:
		return "17"
	case payload.BDS18 != nil:
		return "18"
	case payload.BDS19 != nil:
		return "19"
	case payload.BDS20 != nil:
		return "20"
	case payload.BDS30 != nil:
		return "30"
	case payload.BDS40 != nil:
		return "40"
	case payload.BDS44 != nil:
		return "44"
	case payload.BDS45 != nil:
		return "45"
	case payload.BDS50 != nil:
		return "50"
	case payload.BDS60 != nil:
		return "60"
	case payload.BDS61 != nil:
		return "61"
	default:
		return ""
	}
}

// Marshal serializes an Event as a single JSON line.
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
