package adsb

// ACASResolutionAdvisory is BDS 3,0: the most recent TCAS/ACAS resolution
// advisory, gated on its first byte being the 0x30 register marker (spec
// §4.3). The detailed advisory bits are only meaningful when IssuedRA is
// true; they are left zero otherwise, mirroring the reference decoder's
// Option-gating.
type ACASResolutionAdvisory struct {
	IssuedRA         bool
	Corrective       bool
	DownwardSense    bool
	IncreasedRate    bool
	SenseReversal    bool
	AltitudeCrossing bool
	Positive         bool
	Terminated       bool
	Multiple         bool
}

func decodeBDS30(mb []byte) *ACASResolutionAdvisory {
	if getBits(mb, 1, 8) != 0x30 {
		return nil
	}
	ra := &ACASResolutionAdvisory{IssuedRA: getBit(mb, 9)}
	if ra.IssuedRA {
		ra.Corrective = getBit(mb, 10)
		ra.DownwardSense = getBit(mb, 11)
		ra.IncreasedRate = getBit(mb, 12)
		ra.SenseReversal = getBit(mb, 13)
		ra.AltitudeCrossing = getBit(mb, 14)
		ra.Positive = getBit(mb, 15)
	}
	// bits 16-22 reserved for ACAS III, bits 23-26 RA complements (gated
	// the same way, omitted: not folded into aggregator state).
	ra.Terminated = getBit(mb, 27)
	ra.Multiple = getBit(mb, 28)
	return ra
}
