package scoring

import "math"

const (
	roundingRegimeSwitch = 10000
	smallBucket          = 100
	largeBucket          = 1000
)

// RoundPoints rounds a raw point value to a display-friendly increment.
// Values under 10000 round to the nearest multiple of 100 with exact
// midpoints rounding up (150 -> 200); values at or above 10000 round to
// the nearest multiple of 1000 with exact midpoints rounding down
// (10500 -> 10000). The midpoint asymmetry between the two regimes is
// deliberate and pinned by tests.
func RoundPoints(raw float64) int {
	if raw < roundingRegimeSwitch {
		return int(math.Floor(raw/smallBucket+0.5)) * smallBucket
	}
	return int(math.Ceil(raw/largeBucket-0.5)) * largeBucket
}
