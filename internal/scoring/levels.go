package scoring

// MaxLevel is the top of the level curve.
const MaxLevel = 100

// Coefficients of the quadratic level curve. The raw threshold for
// level n is curveQuadratic*n^2 + curveLinear*n, rounded by RoundPoints.
const (
	curveQuadratic = 50
	curveLinear    = 50
)

// PointsForLevel returns the total points required to reach the given
// level. The curve is quadratic and strictly increasing after rounding;
// level 1 requires 100 points. Levels below 1 are clamped to 1.
func PointsForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	raw := float64(curveQuadratic*level*level + curveLinear*level)
	return RoundPoints(raw)
}

// LevelForPoints returns the greatest level whose threshold does not
// exceed points, capped at MaxLevel. Users below the level-1 threshold
// are still level 1.
func LevelForPoints(points int) int {
	level := 1
	for i := 1; i <= MaxLevel; i++ {
		if PointsForLevel(i) <= points {
			level = i
		} else {
			break
		}
	}
	return level
}
