package grader

import "math"

// Round2 rounds v to two decimal places, the precision every score is reported at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp bounds a score to the [0,10] range.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 10:
		return 10
	default:
		return v
	}
}
