package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNUCp checks the typecode-derived position-quality formula for
// each of its three ranges (spec §4.1), plus a typecode outside all of
// them.
func TestNUCp(t *testing.T) {
	tests := []struct {
		tc   uint8
		want int
	}{
		{9, 9},
		{18, 0},
		{20, 9},
		{22, 7},
		{5, 9},
		{8, 6},
		{0, 0},
		{19, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NUCp(tt.tc))
	}
}
