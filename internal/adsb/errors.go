package adsb

import "errors"

// Error taxonomy for frame parsing (spec §7): the parser never panics,
// every rejection path returns one of these sentinels (or wraps one).
var (
	ErrTooShort         = errors.New("adsb: frame shorter than its DF requires")
	ErrTooLong          = errors.New("adsb: frame longer than its DF allows")
	ErrBadADSBChecksum  = errors.New("adsb: DF=17/18 CRC residue is non-zero")
	ErrUnknownDF        = errors.New("adsb: downlink format not recognized")
)
