package adsb

// AltitudeSource distinguishes where a BDS 6,2 selected altitude came from.
type AltitudeSource uint8

const (
	AltSourceMCP AltitudeSource = iota
	AltSourceFMS
)

// TargetStateAndStatus is BDS 6,2 / ME typecode 29: the FMS/MCP's
// selected altitude and heading, barometric setting and NACp (spec §4.1,
// §4.3, §4.6).
type TargetStateAndStatus struct {
	AltSource         AltitudeSource
	SelectedAltitude  *uint32 // feet, rounded to the nearest 100
	BarometricSetting *float64 // millibars
	SelectedHeading   *float64 // degrees magnetic
	NACp              uint8
	TCASOperational    bool
	AutopilotEngaged  *bool
	VNAVMode          *bool
	AltitudeHold      *bool
	ApproachMode      *bool
	LNAVMode          *bool
}

// decodeTargetStateAndStatus decodes a BDS 6,2 ME block. Bit positions are
// 1-indexed over the full 56-bit ME (bits 1-5 are the typecode consumed
// by the caller): subtype(6-7) pad(8) alt_source(9) selected_altitude(10-20)
// barometric_setting(21-29) heading_status(30) selected_heading(31-39)
// nac_p(40-43) nic_baro(44) sil(45-46) mode_status(47) autopilot(48)
// vnav_mode(49) alt_hold(50) imf(51) approach_mode(52) tcas_operational(53)
// lnav_mode(54) pad(55-56).
func decodeTargetStateAndStatus(me []byte) *TargetStateAndStatus {
	t := &TargetStateAndStatus{
		AltSource: AltitudeSource(getBits(me, 9, 9)),
	}

	if alt := getBits(me, 10, 20); alt > 1 {
		v := ((alt-1)*32 + 50) / 100 * 100
		t.SelectedAltitude = &v
	}

	if qnh := getBits(me, 21, 29); qnh != 0 {
		v := 800.0 + float64(qnh-1)*0.8
		t.BarometricSetting = &v
	}

	headingStatus := getBit(me, 30)
	if headingStatus {
		raw := getBits(me, 31, 39)
		v := float64(raw) * 180.0 / 256.0
		t.SelectedHeading = &v
	}

	t.NACp = uint8(getBits(me, 40, 43))
	// bit 44: NIC baro, bits 45-46: SIL, not folded into aggregator state.

	modeStatus := getBit(me, 47)
	autopilot := getBit(me, 48)
	vnav := getBit(me, 49)
	altHold := getBit(me, 50)
	// bit 51: IMF, unused.
	approach := getBit(me, 52)
	t.TCASOperational = getBit(me, 53)
	lnav := getBit(me, 54)

	if modeStatus {
		t.AutopilotEngaged = &autopilot
		t.VNAVMode = &vnav
		t.AltitudeHold = &altHold
		t.ApproachMode = &approach
		t.LNAVMode = &lnav
	}

	return t
}
