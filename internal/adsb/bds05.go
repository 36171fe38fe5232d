package adsb

// AirbornePosition is BDS 0,5 (ME typecodes 9-18 barometric, 20-22
// GNSS): altitude plus a CPR-encoded position frame (spec §4.1, §4.4).
//
// | TC | SS | SAF/NICb | ALT | T | F | LAT-CPR | LON-CPR |
// | -- | -- | -------- | --- | - | - | ------- | ------- |
// |  5 |  2 |    1     | 12  | 1 | 1 |   17    |   17    |
type AirbornePosition struct {
	TypeCode           uint8
	SurveillanceStatus uint8
	Altitude           *int32 // feet
	Source             string // "barometric" or "GNSS"
	CPR                CPRFrame
}

func decodeAirbornePosition(me []byte) *AirbornePosition {
	tc := uint8(getBits(me, 1, 5))
	ss := uint8(getBits(me, 6, 7))
	// bit 8 is SAF/NICb, unused by the aggregator
	alt := decodeAC12(getBits(me, 9, 20))
	source := "barometric"
	if tc >= 20 {
		source = "GNSS"
	}
	fflag := uint8(getBits(me, 22, 22))
	latCPR := getBits(me, 23, 39)
	lonCPR := getBits(me, 40, 56)

	return &AirbornePosition{
		TypeCode:           tc,
		SurveillanceStatus: ss,
		Altitude:           alt,
		Source:             source,
		CPR: CPRFrame{
			LatCPR: latCPR,
			LonCPR: lonCPR,
			FFlag:  fflag,
		},
	}
}
