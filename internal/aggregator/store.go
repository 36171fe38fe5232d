package aggregator

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"jet1090go/internal/adsb"
	"jet1090go/internal/dedup"
	"jet1090go/internal/ingest"
)

// StateStore holds per-ICAO StateVectors for every aircraft currently
// tracked, protected by a single mutex (spec §4.6). Callers must not
// retain a Snapshot across calls that might mutate it; use the read
// accessors below, which return copies.
type StateStore struct {
	mu       sync.Mutex
	vectors  map[string]*StateVectors
	sensors  map[string]*SensorInfo
	db       AircraftDatabase
	cpr      *adsb.CPRDecoder
	logger   *logrus.Logger
	retain   time.Duration // history retention window
	historyN int           // max retained history entries per aircraft, 0 = unbounded
}

// NewStateStore creates an empty store. cpr may be nil if no CPR
// decoding is wanted (positions are then never folded). db may be nil.
func NewStateStore(cpr *adsb.CPRDecoder, db AircraftDatabase, retain time.Duration, historyN int, logger *logrus.Logger) *StateStore {
	return &StateStore{
		vectors:  make(map[string]*StateVectors),
		sensors:  make(map[string]*SensorInfo),
		db:       db,
		cpr:      cpr,
		logger:   logger,
		retain:   retain,
		historyN: historyN,
	}
}

// Update folds one decoded message (plus the dedup metadata that
// produced it) into the store, creating a new StateVectors entry on
// first sight of an ICAO24 (spec §4.6).
func (s *StateStore) Update(msg *adsb.Message, merged dedup.Merged) {
	icao := icaoHex(msg)
	if icao == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sv, ok := s.vectors[icao]
	if !ok {
		sv = newStateVectors(icao, msg.Timestamp, s.db)
		s.vectors[icao] = sv
	}

	cur := &sv.Cur
	cur.LastSeen = msg.Timestamp
	cur.Count++
	cur.Sensors = mergeSensors(cur.Sensors, merged.Sensors)
	s.recordSensors(merged.Sensors)

	s.fold(cur, msg)

	if isRetained(msg) {
		sv.Hist = append(sv.Hist, HistoryEntry{Timestamp: msg.Timestamp, Message: msg})
		if s.historyN > 0 && len(sv.Hist) > s.historyN {
			sv.Hist = sv.Hist[len(sv.Hist)-s.historyN:]
		}
	}
}

// fold applies update_snapshot's per-DF/per-BDS rules (spec §4.6),
// translated directly from snapshot.rs.
func (s *StateStore) fold(cur *Snapshot, msg *adsb.Message) {
	switch {
	case msg.SurveillanceIdentity != nil:
		cur.Squawk = msg.SurveillanceIdentity.Squawk

	case msg.SurveillanceAltitude != nil:
		cur.Altitude = msg.SurveillanceAltitude.Altitude

	case msg.ADSB != nil:
		s.foldME(cur, msg.ADSB, false)

	case msg.TISB != nil:
		cur.TypeCode = "GRND"
		s.foldME(cur, msg.TISB, true)

	case msg.CommBAltitude != nil:
		s.foldCommB(cur, msg.CommBAltitude)

	case msg.CommBIdentity != nil:
		s.foldCommB(cur, msg.CommBIdentity)
	}
}

// foldME folds one ADS-B (DF=17) or TIS-B (DF=18) ME payload. tisb
// selects the TIS-B BDS 0,8 callsign rule, which — unlike the ADS-B
// path — does not discard a callsign containing "#" (snapshot.rs keeps
// this asymmetry; it is not a simplification).
func (s *StateStore) foldME(cur *Snapshot, payload *adsb.ADSBPayload, tisb bool) {
	me := payload.ME

	if pos := me.AirbornePosition; pos != nil {
		cur.Altitude = pos.Altitude
		s.foldPosition(cur, payload.ICAO24, pos.CPR)
		cur.Airport = ""
	}

	if pos := me.SurfacePosition; pos != nil {
		cur.Altitude = nil
		if pos.GroundSpeed != nil {
			cur.GroundSpeed = pos.GroundSpeed
		}
		if pos.Track != nil {
			cur.Track = pos.Track
		}
		s.foldPosition(cur, payload.ICAO24, pos.CPR)
		if s.cpr != nil {
			// airport inference is the CPR decoder's own per-ICAO cache;
			// the aggregator only reads it back, it never sets it.
			cur.Airport = s.cpr.AirportFor(payload.ICAO24)
		}
	}

	if id := me.AircraftID; id != nil {
		if tisb {
			cur.Callsign = id.Callsign
		} else if !strings.Contains(id.Callsign, "#") {
			cur.Callsign = id.Callsign
		}
	}

	if vel := me.Velocity; vel != nil {
		if vel.VerticalRate != nil {
			cur.VerticalRate = vel.VerticalRate
		}
		switch vel.Subtype {
		case 1, 2:
			if vel.GroundSpeed != nil {
				cur.GroundSpeed = vel.GroundSpeed
			}
			if vel.Track != nil {
				cur.Track = vel.Track
			}
		case 3, 4:
			if vel.IAS != nil {
				cur.IAS = vel.IAS
			}
			if vel.TAS != nil {
				cur.TAS = vel.TAS
			}
			if vel.Heading != nil {
				cur.Heading = vel.Heading
			}
		}
	}

	if st := me.Status; st != nil {
		cur.Squawk = st.Squawk
	}

	if ts := me.TargetState; ts != nil {
		cur.SelectedAltitude = ts.SelectedAltitude
		nacp := ts.NACp
		cur.NACp = &nacp
	}

	if op := me.OperationStatus; op != nil {
		switch op.Version {
		case 1, 2:
			nacp := op.NACp
			cur.NACp = &nacp
		}
	}
}

// foldCommB folds a speculatively-decoded Comm-B payload (DF=20/21),
// identical treatment for both per snapshot.rs.
func (s *StateStore) foldCommB(cur *Snapshot, payload *adsb.CommBPayload) {
	if id := payload.BDS20; id != nil {
		if !strings.Contains(id.Callsign, "#") {
			cur.Callsign = id.Callsign
		}
	}

	if sv := payload.BDS40; sv != nil && sv.SelectedAltitudeMCP != nil {
		cur.SelectedAltitude = sv.SelectedAltitudeMCP
	}

	if tt := payload.BDS50; tt != nil {
		if tt.RollAngle != nil {
			cur.Roll = tt.RollAngle
		}
		if tt.TrackAngle != nil {
			cur.Track = tt.TrackAngle
		}
		if tt.GroundSpeed != nil {
			gs := float64(*tt.GroundSpeed)
			cur.GroundSpeed = &gs
		}
		if tt.TrueAirspeed != nil {
			cur.TAS = tt.TrueAirspeed
		}
	}

	if hs := payload.BDS60; hs != nil {
		if hs.IndicatedAirspeed != nil {
			cur.IAS = hs.IndicatedAirspeed
		}
		if hs.Mach != nil {
			cur.Mach = hs.Mach
		}
		if hs.MagneticHeading != nil {
			cur.Heading = hs.MagneticHeading
		}
		// inertial source preferred over barometric (spec §4.6, Open
		// Question resolution in DESIGN.md); barometric rate is never
		// folded directly here.
		if hs.InertialVerticalVelocity != nil {
			cur.VerticalRate = hs.InertialVerticalVelocity
		}
	}
}

// foldPosition runs the CPR decoder (if present) against a freshly
// decoded frame, using the aircraft's own last-known fix as the local
// reference per DESIGN.md's Open Question resolution.
func (s *StateStore) foldPosition(cur *Snapshot, icao uint32, frame adsb.CPRFrame) {
	if s.cpr == nil {
		return
	}
	frame.Timestamp = cur.LastSeen

	var ref *adsb.Position
	if cur.Latitude != nil && cur.Longitude != nil {
		ref = &adsb.Position{Latitude: *cur.Latitude, Longitude: *cur.Longitude}
	}

	if pos, ok := s.cpr.Decode(icao, frame, ref); ok {
		lat, lon := pos.Latitude, pos.Longitude
		cur.Latitude = &lat
		cur.Longitude = &lon
	}
}

// mergeSensors appends newly-observed sensors not already recorded for
// this aircraft, keyed by SensorID (spec §4.5: a dedup window merges
// metadata from every sensor that heard a given frame, but a snapshot
// accumulates every sensor that has ever reported the aircraft).
func mergeSensors(existing, incoming []ingest.SensorMetadata) []ingest.SensorMetadata {
	seen := make(map[string]bool, len(existing))
	for _, m := range existing {
		seen[m.SensorID] = true
	}
	for _, m := range incoming {
		if !seen[m.SensorID] {
			existing = append(existing, m)
			seen[m.SensorID] = true
		}
	}
	return existing
}

// Expire drops any aircraft not seen within maxAge of now, and prunes
// history entries older than historyAge from the survivors (spec
// §4.6). Expired aircraft also have their CPR tracking state forgotten.
func (s *StateStore) Expire(now time.Time, maxAge, historyAge time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for icao, sv := range s.vectors {
		if now.Sub(sv.Cur.LastSeen) > maxAge {
			delete(s.vectors, icao)
			if s.cpr != nil {
				if addr, ok := parseICAOHex(icao); ok {
					s.cpr.Forget(addr)
				}
			}
			continue
		}
		if historyAge > 0 {
			cut := 0
			for cut < len(sv.Hist) && now.Sub(sv.Hist[cut].Timestamp) >= historyAge {
				cut++
			}
			if cut > 0 {
				sv.Hist = sv.Hist[cut:]
			}
		}
	}
}

// ICAO24Keys returns every tracked aircraft's ICAO-24 hex address.
func (s *StateStore) ICAO24Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.vectors))
	for k := range s.vectors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current state for icao24, if tracked.
func (s *StateStore) Snapshot(icao24 string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sv, ok := s.vectors[icao24]
	if !ok {
		return Snapshot{}, false
	}
	return sv.Cur, true
}

// AllSnapshots returns a copy of every tracked aircraft's current state.
func (s *StateStore) AllSnapshots() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Snapshot, 0, len(s.vectors))
	for _, sv := range s.vectors {
		out = append(out, sv.Cur)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ICAO24 < out[j].ICAO24 })
	return out
}

// Track returns a copy of icao24's retained history, oldest first.
func (s *StateStore) Track(icao24 string) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	sv, ok := s.vectors[icao24]
	if !ok {
		return nil
	}
	out := make([]HistoryEntry, len(sv.Hist))
	copy(out, sv.Hist)
	return out
}

func parseICAOHex(s string) (uint32, bool) {
	var v uint32
	if len(s) != 6 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}
