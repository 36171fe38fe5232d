package adsb

// GICBCapabilityReport is BDS 1,7: which commonly-used GICB registers the
// transponder currently has valid data for (spec §4.3). bds20 must read
// true (aircraft identification is always available); the trailing 27
// bits are reserved and must be zero. Either violation invalidates the
// register.
type GICBCapabilityReport struct {
	BDS05, BDS06, BDS07, BDS08, BDS09, BDS0A bool
	BDS20, BDS21                             bool
	BDS40, BDS41, BDS42, BDS43, BDS44, BDS45, BDS48 bool
	BDS50, BDS51, BDS52, BDS53, BDS54, BDS55, BDS56, BDS5F, BDS60 bool
}

func decodeBDS17(mb []byte) *GICBCapabilityReport {
	r := &GICBCapabilityReport{
		BDS05: getBit(mb, 1), BDS06: getBit(mb, 2), BDS07: getBit(mb, 3),
		BDS08: getBit(mb, 4), BDS09: getBit(mb, 5), BDS0A: getBit(mb, 6),
		BDS20: getBit(mb, 7), BDS21: getBit(mb, 8),
		BDS40: getBit(mb, 9), BDS41: getBit(mb, 10), BDS42: getBit(mb, 11),
		BDS43: getBit(mb, 12), BDS44: getBit(mb, 13), BDS45: getBit(mb, 14),
		BDS48: getBit(mb, 15),
		BDS50: getBit(mb, 16), BDS51: getBit(mb, 17), BDS52: getBit(mb, 18),
		BDS53: getBit(mb, 19), BDS54: getBit(mb, 20), BDS55: getBit(mb, 21),
		BDS56: getBit(mb, 22), BDS5F: getBit(mb, 23), BDS60: getBit(mb, 24),
	}
	if !r.BDS20 {
		return nil // aircraft identification capability is always reported
	}
	if getBits(mb, 30, 56) != 0 {
		return nil // reserved trailer must be all zero
	}
	return r
}
