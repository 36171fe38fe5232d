package adsb

// CommBPayload is the decoded form of a Comm-B MB field (DF=20/21, spec
// §4.3). Mode S gives no indication which BDS register a given MB field
// actually carries, so every known register is attempted independently;
// a register's pointer is non-nil only when its own structural
// validators (first-byte marker, reserved-bits-zero, cross-field
// plausibility) all pass. More than one register commonly validates for
// the same bytes by coincidence — the aggregator (§4.6) picks whichever
// ones it needs and ignores the rest, exactly as the multi-register Comm-B
// view this register set exists to support.
type CommBPayload struct {
	BDS10 *DataLinkCapability
	BDS17 *GICBCapabilityReport
	BDS18 *GICBCapabilityReportPart1
	BDS19 *GICBCapabilityReportPart2
	BDS20 *CommBAircraftIdentification
	BDS30 *ACASResolutionAdvisory
	BDS40 *SelectedVerticalIntention
	BDS44 *MeteorologicalRoutineAirReport
	BDS45 *MeteorologicalHazardReport
	BDS50 *TrackAndTurnReport
	BDS60 *HeadingAndSpeedReport
	BDS61 *AircraftStatus
}

// decodeCommB speculatively decodes every BDS register this pipeline
// understands against the same 7-byte MB field.
func decodeCommB(mb []byte) *CommBPayload {
	return &CommBPayload{
		BDS10: decodeBDS10(mb),
		BDS17: decodeBDS17(mb),
		BDS18: decodeBDS18(mb),
		BDS19: decodeBDS19(mb),
		BDS20: decodeBDS20(mb),
		BDS30: decodeBDS30(mb),
		BDS40: decodeBDS40(mb),
		BDS44: decodeBDS44(mb),
		BDS45: decodeBDS45(mb),
		BDS50: decodeBDS50(mb),
		BDS60: decodeBDS60(mb),
		BDS61: decodeBDS61(mb),
	}
}
