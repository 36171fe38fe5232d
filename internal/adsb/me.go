package adsb

// decodeME dispatches a 56-bit ME field (7 bytes) by its typecode (bits
// 1-5) per spec §4.1's ME dispatch table. Typecodes with no
// position/identity/velocity content (0, 23-27, 30) return a zero-value
// MEPayload (all pointers nil).
func decodeME(me []byte) MEPayload {
	tc := uint8(getBits(me, 1, 5))

	switch {
	case tc >= 1 && tc <= 4:
		return MEPayload{AircraftID: decodeAircraftIdentification(me)}
	case tc >= 5 && tc <= 8:
		return MEPayload{SurfacePosition: decodeSurfacePosition(me)}
	case tc >= 9 && tc <= 18:
		return MEPayload{AirbornePosition: decodeAirbornePosition(me)}
	case tc == 19:
		return MEPayload{Velocity: decodeAirborneVelocity(me)}
	case tc >= 20 && tc <= 22:
		return MEPayload{AirbornePosition: decodeAirbornePosition(me)}
	case tc == 28:
		return MEPayload{Status: decodeAircraftStatus(me)}
	case tc == 29:
		return MEPayload{TargetState: decodeTargetStateAndStatus(me)}
	case tc == 31:
		return MEPayload{OperationStatus: decodeAircraftOperationStatus(me)}
	default:
		return MEPayload{}
	}
}
