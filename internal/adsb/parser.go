package adsb

import "time"

const (
	shortFrameLen = 7  // bytes, DF<16
	longFrameLen  = 14 // bytes, DF>=16
)

// Parse decodes a raw Mode S frame (spec §3.1, §4.1). Length is validated
// against the DF's required form before anything else is read. There is
// no error-correction pass (§4.2): a DF=17/18 frame with a non-zero CRC
// residue is rejected outright; every other DF recovers its ICAO-24 by
// XOR-ing the trailing parity field with the frame's own CRC residue,
// which is how Mode S multiplies an omitted explicit address field.
func Parse(data []byte, ts time.Time) (*Message, error) {
	if len(data) < 1 {
		return nil, ErrTooShort
	}
	df := DF(getBits(data, 1, 5))

	wantLen := shortFrameLen
	if df.IsLong() {
		wantLen = longFrameLen
	}
	if len(data) < wantLen {
		return nil, ErrTooShort
	}
	if len(data) > wantLen {
		return nil, ErrTooLong
	}

	msg := &Message{DF: df, Raw: data, Timestamp: ts}

	switch {
	case df == DFShortAirAir:
		parity := getBits(data, 33, 56)
		msg.ICAO24 = parity ^ Checksum(data[:4])
		msg.ShortAirAir = &ShortAirAirSurveillance{
			VS:       uint8(getBits(data, 6, 6)),
			SL:       uint8(getBits(data, 9, 11)),
			RI:       uint8(getBits(data, 14, 15)),
			Altitude: decodeAC13(getBits(data, 20, 32)),
		}

	case df == DFSurveillanceAltitude:
		parity := getBits(data, 33, 56)
		msg.ICAO24 = parity ^ Checksum(data[:4])
		msg.SurveillanceAltitude = &SurveillanceAltitudeReply{
			FS:       uint8(getBits(data, 6, 8)),
			DR:       uint8(getBits(data, 9, 13)),
			UM:       uint8(getBits(data, 14, 19)),
			Altitude: decodeAC13(getBits(data, 20, 32)),
		}

	case df == DFSurveillanceIdentity:
		parity := getBits(data, 33, 56)
		msg.ICAO24 = parity ^ Checksum(data[:4])
		msg.SurveillanceIdentity = &SurveillanceIdentityReply{
			FS:     uint8(getBits(data, 6, 8)),
			DR:     uint8(getBits(data, 9, 13)),
			UM:     uint8(getBits(data, 14, 19)),
			Squawk: decodeID13Squawk(getBits(data, 20, 32)),
		}

	case df == DFAllCall:
		msg.ICAO24 = getBits(data, 9, 32)
		msg.AllCall = &AllCallReply{
			CA: uint8(getBits(data, 6, 8)),
			PI: getBits(data, 33, 56) ^ Checksum(data[:4]),
		}

	case df == DFLongAirAir:
		parity := getBits(data, 89, 112)
		msg.ICAO24 = parity ^ Checksum(data[:11])
		var mv [7]byte
		for i := range mv {
			mv[i] = byte(getBits(data, 33+i*8, 40+i*8))
		}
		msg.LongAirAir = &LongAirAirSurveillance{
			VS:       uint8(getBits(data, 6, 6)),
			SL:       uint8(getBits(data, 9, 11)),
			RI:       uint8(getBits(data, 14, 17)),
			Altitude: decodeAC13(getBits(data, 20, 32)),
			MV:       mv,
		}

	case df == DFExtendedSquitter, df == DFExtendedSquitterTISB:
		if Checksum(data) != 0 {
			return nil, ErrBadADSBChecksum
		}
		msg.ICAO24 = getBits(data, 9, 32)
		var me [7]byte
		for i := range me {
			me[i] = byte(getBits(data, 33+i*8, 40+i*8))
		}
		tc := uint8(getBits(me[:], 1, 5))
		payload := &ADSBPayload{
			CA:         uint8(getBits(data, 6, 8)),
			ICAO24:     msg.ICAO24,
			ParityICAO: msg.ICAO24,
			TypeCode:   tc,
			ME:         decodeME(me[:]),
		}
		if df == DFExtendedSquitter {
			msg.ADSB = payload
		} else {
			msg.TISB = payload
		}

	case df == DFMilitaryES:
		msg.ICAO24 = getBits(data, 9, 32)
		msg.MilitaryES = &MilitaryExtendedSquitter{AF: uint8(getBits(data, 6, 8))}

	case df == DFCommBAltitude, df == DFCommBIdentity:
		parity := getBits(data, 89, 112)
		msg.ICAO24 = parity ^ Checksum(data[:11])
		var mb [7]byte
		for i := range mb {
			mb[i] = byte(getBits(data, 33+i*8, 40+i*8))
		}
		payload := decodeCommB(mb[:])
		if df == DFCommBAltitude {
			msg.CommBAltitude = payload
		} else {
			msg.CommBIdentity = payload
		}

	case df.IsCommD():
		parity := getBits(data, 89, 112)
		msg.ICAO24 = parity ^ Checksum(data[:11])
		var seg [10]byte
		for i := range seg {
			seg[i] = byte(getBits(data, 9+i*8, 16+i*8))
		}
		msg.CommD = &CommDExtended{
			KE:      uint8(getBits(data, 6, 6)),
			ND:      uint8(getBits(data, 7, 8)),
			Segment: seg,
			PI:      parity,
		}

	default:
		return nil, ErrUnknownDF
	}

	return msg, nil
}
