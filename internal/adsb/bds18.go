package adsb

// GICBCapabilityReportPart1 is BDS 1,8: GICB capability flags for register
// range 0x10-0x38 (spec §4.3). Every flag except bds30 and bds21 must read
// false; any of them reading true invalidates the register, since those
// registers are not expected to be in active use on real-world aircraft.
type GICBCapabilityReportPart1 struct {
	BDS30, BDS21 bool
}

func decodeBDS18(mb []byte) *GICBCapabilityReportPart1 {
	// bit layout, MSB first: bds38..bds31 (8), bds30 (1), bds2f..bds20 (16),
	// bds1f..bds10 (16), padding (15) = 56 bits total.
	gated := []int{1, 2, 3, 4, 5, 6, 7, 8} // bds38..bds31
	for _, b := range gated {
		if getBit(mb, b) {
			return nil
		}
	}
	bds30 := getBit(mb, 9)
	gated2 := make([]int, 0, 38)
	for b := 10; b <= 56; b++ {
		if b == 24 {
			continue // bds21, left ungated
		}
		gated2 = append(gated2, b)
	}
	for _, b := range gated2 {
		if getBit(mb, b) {
			return nil
		}
	}
	return &GICBCapabilityReportPart1{BDS30: bds30, BDS21: getBit(mb, 24)}
}
