package adsb

// TrackAndTurnReport is BDS 5,0: roll angle, track angle, groundspeed,
// track rate and true airspeed (spec §4.3). Cross-field validators (roll
// vs. turn-rate sign agreement, groundspeed/TAS plausibility) gate the
// whole register, per the reference decoder.
type TrackAndTurnReport struct {
	RollAngle    *float64 // degrees, negative = left wing down
	TrackAngle   *float64 // degrees true
	GroundSpeed  *uint16  // knots
	TrackRate    *float64 // degrees/sec
	TrueAirspeed *uint16  // knots
}

func decodeBDS50(mb []byte) *TrackAndTurnReport {
	r := &TrackAndTurnReport{}

	rollStatus := getBit(mb, 1)
	rollSign := getBit(mb, 2)
	rollRaw := uint16(getBits(mb, 3, 11))
	if !rollStatus {
		if rollSign || rollRaw != 0 {
			return nil
		}
	} else {
		var roll float64
		if rollSign {
			roll = (float64(rollRaw) - 512) * 45.0 / 256.0
		} else {
			roll = float64(rollRaw) * 45.0 / 256.0
		}
		if roll < -50 || roll > 50 {
			return nil
		}
		r.RollAngle = &roll
	}

	trackStatus := getBit(mb, 12)
	trackSign := getBit(mb, 13)
	trackRaw := uint16(getBits(mb, 14, 23))
	if !trackStatus {
		if trackSign || trackRaw != 0 {
			return nil
		}
	} else {
		v := int16(trackRaw)
		if trackSign {
			v -= 1024
		}
		track := float64(v) * 90.0 / 512.0
		if track < 0 {
			track += 360
		}
		r.TrackAngle = &track
	}

	gsStatus := getBit(mb, 24)
	gsRaw := uint16(getBits(mb, 25, 34))
	if !gsStatus {
		if gsRaw != 0 {
			return nil
		}
	} else {
		gs := gsRaw * 2
		if gs > 600 {
			return nil
		}
		r.GroundSpeed = &gs
	}

	rateStatus := getBit(mb, 35)
	rateSign := getBit(mb, 36)
	rateRaw := uint16(getBits(mb, 37, 45))
	if !rateStatus {
		if rateSign || rateRaw != 0 {
			return nil
		}
	} else if rateRaw != 0x1ff {
		v := int16(rateRaw)
		if rateSign {
			v -= 512
		}
		rate := float64(v) * 8.0 / 256.0
		if r.RollAngle != nil && (*r.RollAngle)*rate < 0 {
			return nil // left wing down must turn left
		}
		r.TrackRate = &rate
	}

	tasStatus := getBit(mb, 46)
	tasRaw := uint16(getBits(mb, 47, 56))
	if !tasStatus {
		if tasRaw != 0 {
			return nil
		}
	} else {
		tas := tasRaw * 2
		if r.GroundSpeed != nil {
			gs := int32(*r.GroundSpeed)
			if tas < 80 || tas > 500 {
				return nil
			}
			if diff := gs - int32(tas); diff > 200 || diff < -200 {
				return nil
			}
		}
		r.TrueAirspeed = &tas
	}

	return r
}
