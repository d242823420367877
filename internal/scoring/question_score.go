package scoring

import (
	"math"

	"sports-trivia/internal/domain"
)

// ScoringConfig holds the knobs for per-question point computation.
// DifficultyWeights here is intentionally distinct from the quiz-scale
// weight table in quiz_scale.go; the two encode different game-design
// intents and must not be merged.
type ScoringConfig struct {
	BasePoints          float64
	FloorPortion        float64
	MinTimeLimitSeconds float64
	DifficultyWeights   map[domain.Difficulty]float64
}

// DefaultScoringConfig returns the production scoring configuration:
// 100 base points, a 25% floor at the time limit, a 3 second minimum
// effective limit, and weights EASY 1 / MEDIUM 2 / HARD 3.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BasePoints:          100,
		FloorPortion:        0.25,
		MinTimeLimitSeconds: 3,
		DifficultyWeights: map[domain.Difficulty]float64{
			domain.DifficultyEasy:   1,
			domain.DifficultyMedium: 2,
			domain.DifficultyHard:   3,
		},
	}
}

// QuestionConfig is the scoring-relevant shape of a question.
type QuestionConfig struct {
	Difficulty       domain.Difficulty
	TimeLimitSeconds float64
}

// ScoreQuestion computes the points awarded for one answered question.
// An incorrect answer scores 0. A correct answer earns the question's
// difficulty-weighted maximum, decaying linearly with time spent down
// to FloorPortion of the maximum at the time limit; answers past the
// limit are clamped to the floor. The effective limit is never below
// MinTimeLimitSeconds.
func ScoreQuestion(q QuestionConfig, isCorrect bool, timeSpentSeconds float64, cfg ScoringConfig) int {
	if !isCorrect {
		return 0
	}

	limit := math.Max(q.TimeLimitSeconds, cfg.MinTimeLimitSeconds)
	weight, ok := cfg.DifficultyWeights[q.Difficulty]
	if !ok {
		weight = cfg.DifficultyWeights[domain.DifficultyMedium]
	}
	maxPoints := weight * cfg.BasePoints

	spent := math.Max(timeSpentSeconds, 0)
	factor := 1 - (1-cfg.FloorPortion)*(spent/limit)
	if factor < cfg.FloorPortion {
		factor = cfg.FloorPortion
	}
	if factor > 1 {
		factor = 1
	}

	return int(math.Round(maxPoints * factor))
}
