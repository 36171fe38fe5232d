package adsb

// SurfacePosition is BDS 0,6 (ME typecodes 5-8): ground movement, track
// angle and CPR-encoded position (spec §4.1, §4.4).
//
// | TC | MOV | S | TRK | T | F | LAT-CPR | LON-CPR |
// | -- | --- | - | --- | - | - | ------- | ------- |
// |  5 |  7  | 1 |  7  | 1 | 1 |   17    |   17    |
type SurfacePosition struct {
	TypeCode    uint8
	GroundSpeed *float64 // knots
	Track       *float64 // degrees true
	CPR         CPRFrame
}

func decodeSurfacePosition(me []byte) *SurfacePosition {
	tc := uint8(getBits(me, 1, 5))
	mov := uint8(getBits(me, 6, 12))
	trackStatus := getBit(me, 13)
	trackRaw := uint8(getBits(me, 14, 20))
	fflag := uint8(getBits(me, 22, 22))
	latCPR := getBits(me, 23, 39)
	lonCPR := getBits(me, 40, 56)

	var track *float64
	if trackStatus {
		t := float64(trackRaw) * 360.0 / 128.0
		track = &t
	}

	return &SurfacePosition{
		TypeCode:    tc,
		GroundSpeed: decodeGroundSpeed(mov),
		Track:       track,
		CPR: CPRFrame{
			LatCPR:  latCPR,
			LonCPR:  lonCPR,
			FFlag:   fflag,
			Surface: true,
		},
	}
}

// decodeGroundSpeed decodes the BDS 0,6 7-bit MOV field. Speed is
// encoded non-linearly with finer quantization at low speed (spec §8.2
// scenario 3 confirms the piecewise table against a reference vector).
func decodeGroundSpeed(mov uint8) *float64 {
	var v float64
	switch {
	case mov == 0:
		return nil
	case mov == 1:
		v = 0
	case mov >= 2 && mov <= 8:
		v = 0.125 + float64(mov-2)*0.125
	case mov >= 9 && mov <= 12:
		v = 1 + float64(mov-9)*0.25
	case mov >= 13 && mov <= 38:
		v = 2 + float64(mov-13)*0.25
	case mov >= 39 && mov <= 93:
		v = 15 + float64(mov-39)*1
	case mov >= 94 && mov <= 108:
		v = 70 + float64(mov-94)*2
	case mov >= 109 && mov <= 123:
		v = 100 + float64(mov-109)*5
	case mov == 124:
		v = 175
	default:
		return nil
	}
	return &v
}
