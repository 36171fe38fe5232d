// Package aggregator folds decoded Mode S messages into per-ICAO state
// (spec §4.6), grounded on jet1090's snapshot.rs update_snapshot/
// store_history split: every message refreshes a Snapshot's current
// fields, while only DF 17/18/20/21 traffic is retained in history.
package aggregator

import (
	"time"

	"jet1090go/internal/adsb"
	"jet1090go/internal/ingest"
)

// Snapshot is the most up-to-date known state for one aircraft (spec
// §3.1).
type Snapshot struct {
	ICAO24           string
	FirstSeen        time.Time
	LastSeen         time.Time
	Callsign         string
	Registration     string
	TypeCode         string
	Squawk           string
	Latitude         *float64
	Longitude        *float64
	Altitude         *int32
	SelectedAltitude *uint32
	GroundSpeed      *float64
	VerticalRate     *int16
	Track            *float64
	IAS              *uint16
	TAS              *uint16
	Mach             *float64
	Roll             *float64
	Heading          *float64
	NACp             *uint8
	Count            uint64
	Sensors          []ingest.SensorMetadata
	Airport          string
}

// HistoryEntry is one retained message (spec §4.6: only DF 17/18/20/21
// messages are kept).
type HistoryEntry struct {
	Timestamp time.Time
	Message   *adsb.Message
}

// StateVectors is the current snapshot plus retained history for one
// aircraft.
type StateVectors struct {
	Cur  Snapshot
	Hist []HistoryEntry
}

func newStateVectors(icao24 string, ts time.Time, db AircraftDatabase) *StateVectors {
	cur := Snapshot{ICAO24: icao24, FirstSeen: ts, LastSeen: ts}
	if db != nil {
		if entry, ok := db.Lookup(icao24); ok {
			cur.Registration = entry.Registration
			cur.TypeCode = entry.TypeCode
		}
	}
	if cur.Registration == "" {
		cur.Registration = tailHeuristic(icao24)
	}
	return &StateVectors{Cur: cur}
}

// AircraftEntry is what an aircraft-database collaborator returns for one
// ICAO-24 (spec §6.2).
type AircraftEntry struct {
	Registration string
	TypeCode     string
}

// AircraftDatabase is the optional registration/typecode lookup
// collaborator (spec §6.2).
type AircraftDatabase interface {
	Lookup(icao24 string) (AircraftEntry, bool)
}

func isRetained(msg *adsb.Message) bool {
	return msg.ADSB != nil || msg.TISB != nil || msg.CommBAltitude != nil || msg.CommBIdentity != nil
}

// icaoHex extracts the hex ICAO24 string a message carries, or "" if the
// message's DF carries no recoverable address (spec §4.6's icao24()
// dispatch).
func icaoHex(msg *adsb.Message) string {
	switch msg.DF {
	case adsb.DFShortAirAir, adsb.DFSurveillanceAltitude, adsb.DFSurveillanceIdentity,
		adsb.DFAllCall, adsb.DFLongAirAir, adsb.DFExtendedSquitter, adsb.DFExtendedSquitterTISB,
		adsb.DFCommBAltitude, adsb.DFCommBIdentity:
		return msg.ICAOHex()
	default:
		return ""
	}
}
