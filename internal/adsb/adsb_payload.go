package adsb

// ADSBPayload is the DF=17 (and structurally, DF=18 TIS-B) payload: a
// capability/control field, the broadcasting ICAO-24, and a
// typecode-dispatched ME variant (spec §3.1, §4.1).
type ADSBPayload struct {
	CA      uint8 // capability (DF=17) / control field (DF=18)
	ICAO24  uint32
	ParityICAO uint32 // redundant with Message.ICAO24, kept for the I-ADSB invariant check
	TypeCode uint8
	ME      MEPayload
}

// MEPayload holds the typecode-dispatched contents of the 56-bit ME
// field. Exactly one of these pointers is non-nil per spec's ME
// dispatch table (§4.1); typecodes with no position/identity/velocity
// content (0, 23-27, 30) leave all pointers nil.
type MEPayload struct {
	AircraftID       *AircraftIdentification // TC 1-4, BDS 0,8
	SurfacePosition  *SurfacePosition         // TC 5-8, BDS 0,6
	AirbornePosition *AirbornePosition        // TC 9-18, 20-22, BDS 0,5
	Velocity         *AirborneVelocity        // TC 19, BDS 0,9
	Status           *AircraftStatus          // TC 28, BDS 6,1
	TargetState      *TargetStateAndStatus    // TC 29, BDS 6,2
	OperationStatus  *AircraftOperationStatus // TC 31, BDS 6,5
}

// NUCp returns the position-quality integer derived directly from the
// typecode (spec §4.1), or 0 if the typecode carries no position.
func NUCp(tc uint8) int {
	switch {
	case tc >= 9 && tc <= 18:
		return 18 - int(tc)
	case tc >= 20 && tc <= 22:
		return 29 - int(tc)
	case tc >= 5 && tc <= 8:
		return 14 - int(tc)
	default:
		return 0
	}
}
