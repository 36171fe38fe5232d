package adsb

// AircraftOperationStatus is BDS 6,5 / ME typecode 31: ADS-B version and
// capability class, decoded differently for airborne vs. surface
// aircraft (spec §4.1, §4.3). Only NACp is folded into aggregator state
// (§4.6). Of the capability class only the airborne ACAS and CDTI bits
// are decoded; the operational-mode field is not read.
type AircraftOperationStatus struct {
	Surface bool
	Version uint8 // 0, 1 or 2
	NACp    uint8
	ACAS    bool
	CDTI    bool
}

func decodeAircraftOperationStatus(me []byte) *AircraftOperationStatus {
	subtype := getBits(me, 6, 8)
	switch subtype {
	case 0:
		return decodeOperationStatusAirborne(me)
	case 1:
		return decodeOperationStatusSurface(me)
	default:
		return nil // reserved subtype, not decoded
	}
}

func decodeOperationStatusAirborne(me []byte) *AircraftOperationStatus {
	// capability_class: reserved(2) acas(1) cdti(1) reserved(2) arv(1) ts(1) tc(2) pad(6) = 16 bits, bits 9-24
	acas := getBit(me, 11)
	cdti := getBit(me, 12)
	// operational_mode: 8 bits, bits 25-32.
	// pad byte: 8 bits, bits 33-40.
	version := uint8(getBits(me, 41, 43))

	o := &AircraftOperationStatus{Version: version, ACAS: acas, CDTI: cdti}
	switch version {
	case 1:
		// nic_s(1) nac_p(4): bits 44-48
		o.NACp = uint8(getBits(me, 45, 48))
	case 2:
		// nic_a(1) nac_p(4): bits 44-48
		o.NACp = uint8(getBits(me, 45, 48))
	}
	return o
}

func decodeOperationStatusSurface(me []byte) *AircraftOperationStatus {
	// capability_class: reserved(2) poe(1) es1090(1) pad(2) b2_low(1) uat_in(1) nac_v(3) nic_c(1) = 12 bits, bits 9-20
	o := &AircraftOperationStatus{Surface: true}
	// lw_codes(4): bits 21-24
	// operational_mode(8): bits 25-32
	// gps_antenna_offset(8): bits 33-40
	version := uint8(getBits(me, 41, 43))
	o.Version = version
	switch version {
	case 1, 2:
		o.NACp = uint8(getBits(me, 45, 48))
	}
	return o
}
