package helpers

import "math"

// Round2 rounds to 2 decimal places using round-half-to-even, matching the
// numeric(5,2) columns scores and weights are stored in.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
