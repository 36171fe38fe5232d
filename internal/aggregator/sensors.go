package aggregator

import (
	"sort"
	"time"

	"jet1090go/internal/adsb"
	"jet1090go/internal/ingest"
)

// SensorInfo is the per-sensor bookkeeping spec §6.3's sensors() read
// accessor returns, grounded on jet1090's sensor.rs Sensor struct:
// serial, display name, an optional fixed reference position, and
// running count/last-seen stats this pipeline actually tracks (the
// Rust original leaves count/last as unfilled placeholders; snapshot.rs
// gives every sensor observation a timestamp, so this store folds them
// in as messages arrive instead of leaving them at zero).
type SensorInfo struct {
	Serial    string
	Name      string
	Reference *adsb.Position
	Count     uint64
	Last      time.Time
}

// RegisterSensor records a fixed reference position for a sensor ahead
// of its first observed frame (e.g. a ground station's known survey
// position). Calling it for an already-registered sensor updates the
// reference and, when name is non-empty, the name; count/last are
// untouched.
func (s *StateStore) RegisterSensor(serial, name string, reference *adsb.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.sensors[serial]
	if !ok {
		info = &SensorInfo{Serial: serial, Name: name}
		s.sensors[serial] = info
	}
	if name != "" {
		info.Name = name
	}
	info.Reference = reference
}

// recordSensors folds one merged frame's per-sensor metadata into the
// running count/last-seen stats. Called under s.mu from Update.
func (s *StateStore) recordSensors(metas []ingest.SensorMetadata) {
	for _, m := range metas {
		info, ok := s.sensors[m.SensorID]
		if !ok {
			info = &SensorInfo{Serial: m.SensorID, Name: m.SensorName}
			s.sensors[m.SensorID] = info
		} else if info.Name == "" && m.SensorName != "" {
			info.Name = m.SensorName
		}
		info.Count++
		if m.Timestamp.After(info.Last) {
			info.Last = m.Timestamp
		}
	}
}

// Sensors returns a copy of every sensor's current bookkeeping,
// ordered by serial (spec §6.3).
func (s *StateStore) Sensors() []SensorInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SensorInfo, 0, len(s.sensors))
	for _, info := range s.sensors {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Serial < out[j].Serial })
	return out
}
