package adsb

import (
	"math"
	"sync"
	"time"
)

// CPRFrame is one even- or odd-parity CPR-encoded position report.
type CPRFrame struct {
	LatCPR    uint32
	LonCPR    uint32
	FFlag     uint8 // 0 = even, 1 = odd
	Timestamp time.Time
	Surface   bool
}

// Position is a decoded WGS-84 lat/lon pair.
type Position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// AircraftCPRState is the per-ICAO pair of most-recent even/odd frames
// used by the global CPR algorithm (spec §3.1).
type AircraftCPRState struct {
	ICAO      uint32
	EvenFrame *CPRFrame
	OddFrame  *CPRFrame
	LastPos   *Position
	Airport   string
}

// CPRDecoder holds CPR state for every ICAO currently being tracked and
// applies the global/local algorithms from spec §4.4. It never falls
// back to a hardcoded reference position: local decoding requires an
// explicit reference, supplied by the caller (typically the
// aggregator's last-known position for that aircraft, or an
// operator-configured default — see DESIGN.md's Open Question
// resolution).
type CPRDecoder struct {
	mu    sync.Mutex
	state map[uint32]*AircraftCPRState
}

// NewCPRDecoder creates an empty CPR decoder.
func NewCPRDecoder() *CPRDecoder {
	return &CPRDecoder{state: make(map[uint32]*AircraftCPRState)}
}

// Forget evicts CPR state for icao, called when its StateVectors expires.
func (c *CPRDecoder) Forget(icao uint32) {
	c.mu.Lock()
	delete(c.state, icao)
	c.mu.Unlock()
}

// AirportFor returns the airport last inferred for icao from its
// surface-position traffic, or "" if none is cached or icao is unknown.
func (c *CPRDecoder) AirportFor(icao uint32) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.state[icao]; ok {
		return st.Airport
	}
	return ""
}

// SetAirport records the airport inferred for icao from a surface
// position fix (spec §4.6: airport inference is the CPR tracker's own
// cache, populated by a collaborator that maps a decoded surface
// position to the nearest known airport).
func (c *CPRDecoder) SetAirport(icao uint32, airport string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateFor(icao).Airport = airport
}

// stateFor returns (creating if needed) the tracking entry for icao.
func (c *CPRDecoder) stateFor(icao uint32) *AircraftCPRState {
	s, ok := c.state[icao]
	if !ok {
		s = &AircraftCPRState{ICAO: icao}
		c.state[icao] = s
	}
	return s
}

// globalPairThreshold is the operational window within which an
// even/odd frame pair is considered simultaneous enough for global
// decoding (spec §4.4: "operationally ~10 s").
const globalPairThreshold = 10 * time.Second

// Decode ingests a new CPR frame for icao and returns the best position
// it can derive: global decode when a fresh opposite-parity frame is
// cached, otherwise local decode against ref (the caller's best guess
// at the aircraft's true position — e.g. its last known fix). ref may
// be nil if the caller has no guess; in that case local decode is
// skipped and only global decode (or none) is returned.
func (c *CPRDecoder) Decode(icao uint32, frame CPRFrame, ref *Position) (Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.stateFor(icao)
	fr := frame
	if fr.FFlag == 0 {
		st.EvenFrame = &fr
	} else {
		st.OddFrame = &fr
	}

	if st.EvenFrame != nil && st.OddFrame != nil {
		diff := st.EvenFrame.Timestamp.Sub(st.OddFrame.Timestamp)
		if diff < 0 {
			diff = -diff
		}
		if diff <= globalPairThreshold {
			if pos, ok := decodeGlobal(*st.EvenFrame, *st.OddFrame, fr.Surface, fr.FFlag == 1); ok {
				st.LastPos = &Position{Latitude: pos.Latitude, Longitude: pos.Longitude, Timestamp: frame.Timestamp}
				return *st.LastPos, true
			}
		}
	}

	if ref != nil {
		var pos Position
		var ok bool
		if fr.Surface {
			pos, ok = decodeLocalSurface(*ref, fr)
		} else {
			pos, ok = decodeLocalAirborne(*ref, fr)
		}
		if ok {
			st.LastPos = &Position{Latitude: pos.Latitude, Longitude: pos.Longitude, Timestamp: frame.Timestamp}
			return *st.LastPos, true
		}
	}

	return Position{}, false
}

// cprModInt is the always-positive modulo used throughout the CPR math.
func cprModInt(a, b int) int {
	res := a % b
	if res < 0 {
		res += b
	}
	return res
}

// nFunction returns the number of longitude zones at lat for the given
// frame parity, floored at 1.
func nFunction(lat float64, fflag int) int {
	nl := NL(lat) - fflag
	if nl < 1 {
		nl = 1
	}
	return nl
}

func dlonFunction(lat float64, fflag int) float64 {
	return 360.0 / float64(nFunction(lat, fflag))
}

// decodeGlobal implements spec §4.4's global CPR algorithm. Frames are
// passed by parity role (even first, odd second), not by arrival order,
// to satisfy the CPR symmetry property (§8.1). latestOdd reports whether
// the odd frame is the most recent one; the result uses the latitude
// and longitude zone of that most recent frame's parity.
func decodeGlobal(even, odd CPRFrame, surface, latestOdd bool) (Position, bool) {
	latEven := float64(even.LatCPR)
	latOdd := float64(odd.LatCPR)
	lonEven := float64(even.LonCPR)
	lonOdd := float64(odd.LonCPR)

	j := int(math.Floor(((59*latEven - 60*latOdd) / CPRMax) + 0.5))

	dLatEven := 360.0 / 60.0
	dLatOdd := 360.0 / 59.0
	if surface {
		dLatEven /= 4
		dLatOdd /= 4
	}

	rlatEven := dLatEven * (float64(cprModInt(j, 60)) + latEven/CPRMax)
	rlatOdd := dLatOdd * (float64(cprModInt(j, 59)) + latOdd/CPRMax)

	wrap := 270.0
	if surface {
		wrap = 67.5
	}
	if rlatEven >= wrap {
		rlatEven -= 360
	}
	if rlatOdd >= wrap {
		rlatOdd -= 360
	}

	if rlatEven < -90 || rlatEven > 90 || rlatOdd < -90 || rlatOdd > 90 {
		return Position{}, false
	}
	if NL(rlatEven) != NL(rlatOdd) {
		return Position{}, false
	}

	var rlat float64
	var rlon float64
	lonSpan := 360.0
	if surface {
		lonSpan = 90.0
	}

	if latestOdd {
		nl := NL(rlatOdd)
		ni := nFunction(rlatOdd, 1)
		m := int(math.Floor((((lonEven * float64(nl-1)) - (lonOdd * float64(nl))) / CPRMax) + 0.5))
		dlon := lonSpan / float64(ni)
		rlon = dlon * (float64(cprModInt(m, ni)) + lonOdd/CPRMax)
		rlat = rlatOdd
	} else {
		nl := NL(rlatEven)
		ni := nFunction(rlatEven, 0)
		m := int(math.Floor((((lonEven * float64(nl-1)) - (lonOdd * float64(nl))) / CPRMax) + 0.5))
		dlon := lonSpan / float64(ni)
		rlon = dlon * (float64(cprModInt(m, ni)) + lonEven/CPRMax)
		rlat = rlatEven
	}

	if surface {
		rlon -= math.Floor((rlon+45)/90) * 90
	} else {
		rlon -= math.Floor((rlon+180)/360) * 360
	}

	return Position{Latitude: rlat, Longitude: rlon}, true
}

// decodeLocalAirborne implements spec §4.4's local airborne algorithm.
func decodeLocalAirborne(ref Position, frame CPRFrame) (Position, bool) {
	dLat := 360.0 / 60.0
	if frame.FFlag == 1 {
		dLat = 360.0 / 59.0
	}

	latCPR := float64(frame.LatCPR) / CPRMax
	j := math.Floor(ref.Latitude/dLat) + math.Floor(0.5+math.Mod(ref.Latitude, dLat)/dLat-latCPR)
	rlat := dLat * (j + latCPR)

	if rlat < -90 || rlat > 90 {
		return Position{}, false
	}

	ni := NL(rlat) - int(frame.FFlag)
	if ni < 1 {
		ni = 1
	}
	dLon := 360.0 / float64(ni)

	lonCPR := float64(frame.LonCPR) / CPRMax
	m := math.Floor(ref.Longitude/dLon) + math.Floor(0.5+math.Mod(ref.Longitude, dLon)/dLon-lonCPR)
	rlon := dLon * (m + lonCPR)

	return Position{Latitude: rlat, Longitude: rlon}, true
}

// decodeLocalSurface implements spec §4.4's local surface algorithm,
// which uses a 90°-wide span instead of 360° for both axes.
func decodeLocalSurface(ref Position, frame CPRFrame) (Position, bool) {
	dLat := 90.0 / 60.0
	if frame.FFlag == 1 {
		dLat = 90.0 / 59.0
	}

	latCPR := float64(frame.LatCPR) / CPRMax
	j := math.Floor(ref.Latitude/dLat) + math.Floor(0.5+math.Mod(ref.Latitude, dLat)/dLat-latCPR)
	rlat := dLat * (j + latCPR)

	ni := NL(rlat) - int(frame.FFlag)
	if ni < 1 {
		ni = 1
	}
	dLon := 90.0 / float64(ni)

	lonCPR := float64(frame.LonCPR) / CPRMax
	m := math.Floor(ref.Longitude/dLon) + math.Floor(0.5+math.Mod(ref.Longitude, dLon)/dLon-lonCPR)
	rlon := dLon * (m + lonCPR)

	return Position{Latitude: rlat, Longitude: rlon}, true
}

// NL is the 59-zone longitude-zone-count step function from Annex 10
// Volume IV, encoded as the stepwise comparison ladder spec.md §4.4
// mandates (precision 1e-8) rather than a transcendental formula.
func NL(lat float64) int {
	absLat := math.Abs(lat)

	switch {
	case absLat < 10.47047130:
		return 59
	case absLat < 14.82817437:
		return 58
	case absLat < 18.18626357:
		return 57
	case absLat < 21.02939493:
		return 56
	case absLat < 23.54504487:
		return 55
	case absLat < 25.82924707:
		return 54
	case absLat < 27.93898710:
		return 53
	case absLat < 29.91135686:
		return 52
	case absLat < 31.77209708:
		return 51
	case absLat < 33.53993436:
		return 50
	case absLat < 35.22899598:
		return 49
	case absLat < 36.85025108:
		return 48
	case absLat < 38.41241892:
		return 47
	case absLat < 39.92256684:
		return 46
	case absLat < 41.38651832:
		return 45
	case absLat < 42.80914012:
		return 44
	case absLat < 44.19454951:
		return 43
	case absLat < 45.54626723:
		return 42
	case absLat < 46.86733252:
		return 41
	case absLat < 48.16039128:
		return 40
	case absLat < 49.42776439:
		return 39
	case absLat < 50.67150166:
		return 38
	case absLat < 51.89342469:
		return 37
	case absLat < 53.09516153:
		return 36
	case absLat < 54.27817472:
		return 35
	case absLat < 55.44378444:
		return 34
	case absLat < 56.59318756:
		return 33
	case absLat < 57.72747354:
		return 32
	case absLat < 58.84763776:
		return 31
	case absLat < 59.95459277:
		return 30
	case absLat < 61.04917774:
		return 29
	case absLat < 62.13216659:
		return 28
	case absLat < 63.20427479:
		return 27
	case absLat < 64.26616523:
		return 26
	case absLat < 65.31845310:
		return 25
	case absLat < 66.36171008:
		return 24
	case absLat < 67.39646774:
		return 23
	case absLat < 68.42322022:
		return 22
	case absLat < 69.44242631:
		return 21
	case absLat < 70.45451075:
		return 20
	case absLat < 71.45986473:
		return 19
	case absLat < 72.45884545:
		return 18
	case absLat < 73.45177442:
		return 17
	case absLat < 74.43893416:
		return 16
	case absLat < 75.42056257:
		return 15
	case absLat < 76.39684391:
		return 14
	case absLat < 77.36789461:
		return 13
	case absLat < 78.33374083:
		return 12
	case absLat < 79.29428225:
		return 11
	case absLat < 80.24923213:
		return 10
	case absLat < 81.19801349:
		return 9
	case absLat < 82.13956981:
		return 8
	case absLat < 83.07199445:
		return 7
	case absLat < 83.99173563:
		return 6
	case absLat < 84.89166191:
		return 5
	case absLat < 85.75541621:
		return 4
	case absLat < 86.53536998:
		return 3
	case absLat < 87.00000000:
		return 2
	default:
		return 1
	}
}
