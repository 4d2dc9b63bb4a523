package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{56.669, 56.67},
		{85.0, 85.0},
		{99.999, 100.0},
		{0, 0},
		{33.333, 33.33},
		// exact halves land on the even neighbour
		{0.125, 0.12},
		{0.375, 0.38},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 1e-9, "Round2(%v)", tt.in)
	}
}
