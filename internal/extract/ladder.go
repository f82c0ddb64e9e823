package extract

// Ladder is an ordered list of thresholds mapping a raw value to a score tier.
// A value equal to a threshold falls into that threshold's tier.
type Ladder struct {
	Thresholds []float64
	// Descending rewards small values: the first tier scores 10 and each
	// following tier two points less. Ascending ladders score (i+1)*2.
	Descending bool
}

// Ladders used by the performance metrics.
var (
	LoadTimeLadder     = Ladder{Thresholds: []float64{1, 2, 3, 4, 5}}
	ResponseSizeLadder = Ladder{Thresholds: []float64{1, 2, 5, 10, 20}, Descending: true}
	TTFBLadder         = Ladder{Thresholds: []float64{0.1, 0.3, 0.5, 0.8, 1}, Descending: true}
)

// Rate maps value onto the ladder.
func (l Ladder) Rate(value float64) float64 {
	for i, threshold := range l.Thresholds {
		if value <= threshold {
			if l.Descending {
				return float64(10 - i*2)
			}
			return float64((i + 1) * 2)
		}
	}
	if l.Descending {
		return 0
	}
	return 10
}
