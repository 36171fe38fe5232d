package adsb

// DataLinkCapability is BDS 1,0: the transponder's declared Comm-B/ELM
// capabilities (spec §4.3). The register is gated on its own first byte
// (0x10) rather than a data-plausibility check.
type DataLinkCapability struct {
	ContinuationFlag              bool
	OverlayCommandCapability      bool
	ACAS                          bool
	ModeSSubnetworkVersion        uint8
	TransponderEnhancedProtocol   bool
	ModeSSpecificServices         bool
	UplinkELMThroughput           uint8
	DownlinkELM                   uint8
	AircraftIdentificationCap     bool
	SquitterCapabilitySubfield    bool
	SurveillanceIdentifierCode    bool
	CommonUsageGICBCapability     bool
	BitArray                      uint16
}

// decodeBDS10 validates and decodes a BDS 1,0 register, or returns nil if
// the first byte isn't the 0x10 register marker.
func decodeBDS10(mb []byte) *DataLinkCapability {
	if getBits(mb, 1, 8) != 0x10 {
		return nil
	}
	return &DataLinkCapability{
		ContinuationFlag:            getBit(mb, 9),
		OverlayCommandCapability:    getBit(mb, 15),
		ACAS:                        getBit(mb, 16),
		ModeSSubnetworkVersion:      uint8(getBits(mb, 17, 23)),
		TransponderEnhancedProtocol: getBit(mb, 24),
		ModeSSpecificServices:       getBit(mb, 25),
		UplinkELMThroughput:         uint8(getBits(mb, 26, 28)),
		DownlinkELM:                 uint8(getBits(mb, 29, 32)),
		AircraftIdentificationCap:   getBit(mb, 33),
		SquitterCapabilitySubfield:  getBit(mb, 34),
		SurveillanceIdentifierCode:  getBit(mb, 35),
		CommonUsageGICBCapability:   getBit(mb, 36),
		BitArray:                    uint16(getBits(mb, 41, 56)),
	}
}
