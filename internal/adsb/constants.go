package adsb

// IA5Charset is the 6-bit IA-5 subset used to encode aircraft callsigns
// (BDS 0,8 and BDS 2,0). Index 0 is '#', the sentinel for an invalid
// character; trailing spaces (index 32) are stripped by the caller.
const IA5Charset = "#ABCDEFGHIJKLMNOPQRSTUVWXYZ##### ###############0123456789######"

// CPR decoding constants.
const (
	CPRLatBits = 17
	CPRLonBits = 17
	CPRMax     float64 = 1 << 17 // 2^17
)

// Squawk code (ID13) bit manipulation constants. The 13-bit identity
// field is interleaved C1 A1 C2 A2 C4 A4 _ B1 D1 B2 D2 B4 D4; once
// unscrambled into four 3-bit octal digits A/B/C/D these shifts pack
// them into a 16-bit big-endian value.
const (
	SquawkAShift = 12
	SquawkBShift = 8
	SquawkCShift = 4
	SquawkDShift = 0
)
