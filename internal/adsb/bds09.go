package adsb

// AirborneVelocity is BDS 0,9 (ME typecode 19): one of four subtypes,
// reporting either ground speed/track or airspeed/heading, plus a
// common vertical-rate and GNSS/baro-altitude-delta tail (spec §4.1,
// §8.2 scenario 5).
type AirborneVelocity struct {
	Subtype      uint8
	NACv         uint8
	GroundSpeed  *float64 // knots
	Track        *float64 // degrees true
	Heading      *float64 // degrees magnetic
	IAS          *uint16  // knots
	TAS          *uint16  // knots
	VerticalRate *int16   // ft/min, barometric source unless flagged GNSS
	GeoMinusBaro *int16   // ft, GNSS height minus barometric altitude
}

func decodeAirborneVelocity(me []byte) *AirborneVelocity {
	subtype := uint8(getBits(me, 6, 8))
	nacV := uint8(getBits(me, 9, 11))

	v := &AirborneVelocity{Subtype: subtype, NACv: nacV}

	switch subtype {
	case 1, 2:
		scale := float64(1)
		if subtype == 2 {
			scale = 4
		}
		ewSign := getBit(me, 14)
		ewRaw := uint16(getBits(me, 15, 24))
		nsSign := getBit(me, 25)
		nsRaw := uint16(getBits(me, 26, 35))

		if ewRaw != 0 && nsRaw != 0 {
			ew := (float64(ewRaw) - 1) * scale
			if ewSign {
				ew = -ew
			}
			ns := (float64(nsRaw) - 1) * scale
			if nsSign {
				ns = -ns
			}
			gs := hypot(ew, ns)
			trk := atan2Deg(ew, ns)
			v.GroundSpeed = &gs
			v.Track = &trk
		}
	case 3, 4:
		scale := uint16(1)
		if subtype == 4 {
			scale = 4
		}
		headingStatus := getBit(me, 14)
		headingRaw := uint16(getBits(me, 15, 24))
		isTAS := getBit(me, 25)
		asRaw := uint16(getBits(me, 26, 35))

		if headingStatus {
			h := float64(headingRaw) * 360.0 / 1024.0
			v.Heading = &h
		}
		if asRaw != 0 {
			as := (asRaw - 1) * scale
			if isTAS {
				v.TAS = &as
			} else {
				v.IAS = &as
			}
		}
	}

	vrateSign := getBit(me, 37)
	vrateRaw := uint16(getBits(me, 38, 46))
	if vrateRaw != 0 {
		vr := (int16(vrateRaw) - 1) * 64
		if vrateSign {
			vr = -vr
		}
		v.VerticalRate = &vr
	}

	gnssSign := getBit(me, 49)
	gdRaw := uint16(getBits(me, 50, 56))
	if gdRaw > 1 {
		gd := int16(25 * (int32(gdRaw) - 1))
		if gnssSign {
			gd = -gd
		}
		v.GeoMinusBaro = &gd
	}

	return v
}
