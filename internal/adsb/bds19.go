package adsb

// GICBCapabilityReportPart2 is BDS 1,9: GICB capability flags for register
// range 0x39-0x70 (spec §4.3), continuing BDS 1,8. Nearly every flag must
// read false; bds65/bds61/bds60/bds5f are left ungated per the reference
// decoder, since they cover registers this pipeline itself produces.
type GICBCapabilityReportPart2 struct {
	BDS65, BDS61, BDS60, BDS5F bool
}

func decodeBDS19(mb []byte) *GICBCapabilityReportPart2 {
	ungated := map[int]bool{12: true, 16: true, 17: true, 18: true} // bds65,bds61,bds60,bds5f
	for b := 1; b <= 56; b++ {
		if ungated[b] {
			continue
		}
		if getBit(mb, b) {
			return nil
		}
	}
	return &GICBCapabilityReportPart2{
		BDS65: getBit(mb, 12),
		BDS61: getBit(mb, 16),
		BDS60: getBit(mb, 17),
		BDS5F: getBit(mb, 18),
	}
}
