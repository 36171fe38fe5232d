package adsb

// AircraftStatusSubtype distinguishes the two defined BDS 6,1 subtypes.
type AircraftStatusSubtype uint8

const (
	StatusNoInformation AircraftStatusSubtype = iota
	StatusEmergencyPriority
	StatusACASRA
	StatusReserved
)

// EmergencyState is the 3-bit emergency/priority code (spec §4.3).
type EmergencyState uint8

const (
	EmergencyNone EmergencyState = iota
	EmergencyGeneral
	EmergencyMedical
	EmergencyMinimumFuel
	EmergencyNoCommunication
	EmergencyUnlawfulInterference
	EmergencyDownedAircraft
	EmergencyReserved
)

// AircraftStatus is BDS 6,1 / ME typecode 28: emergency/priority status
// and squawk (spec §4.1, §4.3).
type AircraftStatus struct {
	Subtype        AircraftStatusSubtype
	EmergencyState EmergencyState
	Squawk         string
}

// decodeAircraftStatus decodes ME typecode 28 (DF 17/18): me's bits 1-5
// are the typecode already consumed by the caller.
func decodeAircraftStatus(me []byte) *AircraftStatus {
	return &AircraftStatus{
		Subtype:        AircraftStatusSubtype(getBits(me, 6, 8)),
		EmergencyState: EmergencyState(getBits(me, 9, 11)),
		Squawk:         decodeID13Squawk(getBits(me, 12, 24)),
	}
}

// decodeBDS61 speculatively decodes a raw Comm-B MB field (DF 20/21) as
// BDS 6,1: unlike the ME-typecode path there is no leading typecode byte,
// so the subtype starts at bit 1.
func decodeBDS61(mb []byte) *AircraftStatus {
	return &AircraftStatus{
		Subtype:        AircraftStatusSubtype(getBits(mb, 1, 3)),
		EmergencyState: EmergencyState(getBits(mb, 4, 6)),
		Squawk:         decodeID13Squawk(getBits(mb, 7, 19)),
	}
}
