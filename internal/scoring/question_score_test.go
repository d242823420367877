package scoring

import (
	"testing"

	"sports-trivia/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestScoreQuestionIncorrectIsZero(t *testing.T) {
	cfg := DefaultScoringConfig()
	q := QuestionConfig{Difficulty: domain.DifficultyHard, TimeLimitSeconds: 30}
	assert.Equal(t, 0, ScoreQuestion(q, false, 0, cfg))
}

func TestScoreQuestionFullCreditAtZeroTime(t *testing.T) {
	cfg := DefaultScoringConfig()
	tests := []struct {
		difficulty domain.Difficulty
		want       int
	}{
		{domain.DifficultyEasy, 100},
		{domain.DifficultyMedium, 200},
		{domain.DifficultyHard, 300},
	}
	for _, tt := range tests {
		q := QuestionConfig{Difficulty: tt.difficulty, TimeLimitSeconds: 30}
		assert.Equalf(t, tt.want, ScoreQuestion(q, true, 0, cfg), "difficulty %s", tt.difficulty)
	}
}

func TestScoreQuestionFloorAtTimeLimit(t *testing.T) {
	cfg := DefaultScoringConfig()
	q := QuestionConfig{Difficulty: domain.DifficultyMedium, TimeLimitSeconds: 30}

	assert.Equal(t, 50, ScoreQuestion(q, true, 30, cfg))
	// Past the limit stays clamped at the floor.
	assert.Equal(t, 50, ScoreQuestion(q, true, 300, cfg))
}

func TestScoreQuestionLinearDecay(t *testing.T) {
	cfg := DefaultScoringConfig()
	q := QuestionConfig{Difficulty: domain.DifficultyMedium, TimeLimitSeconds: 30}

	// Halfway to the limit: factor 1 - 0.75*0.5 = 0.625.
	assert.Equal(t, 125, ScoreQuestion(q, true, 15, cfg))
}

func TestScoreQuestionMonotoneInTime(t *testing.T) {
	cfg := DefaultScoringConfig()
	q := QuestionConfig{Difficulty: domain.DifficultyHard, TimeLimitSeconds: 60}

	prev := ScoreQuestion(q, true, 0, cfg)
	for spent := 1.0; spent <= 90; spent++ {
		cur := ScoreQuestion(q, true, spent, cfg)
		assert.LessOrEqualf(t, cur, prev, "points must not increase with time spent (t=%v)", spent)
		prev = cur
	}
}

func TestScoreQuestionMinimumEffectiveLimit(t *testing.T) {
	cfg := DefaultScoringConfig()
	// A 1 second limit is treated as 3 seconds.
	q := QuestionConfig{Difficulty: domain.DifficultyEasy, TimeLimitSeconds: 1}

	assert.Equal(t, 100, ScoreQuestion(q, true, 0, cfg))
	assert.Equal(t, 25, ScoreQuestion(q, true, 3, cfg))
	// Between 1s and 3s the decay is still measured against the 3s floor.
	assert.Equal(t, 63, ScoreQuestion(q, true, 1.5, cfg))
}

func TestScoreQuestionNegativeTimeClamped(t *testing.T) {
	cfg := DefaultScoringConfig()
	q := QuestionConfig{Difficulty: domain.DifficultyMedium, TimeLimitSeconds: 30}
	assert.Equal(t, 200, ScoreQuestion(q, true, -10, cfg))
}

func TestScoreQuestionUnknownDifficultyFallsBackToMedium(t *testing.T) {
	cfg := DefaultScoringConfig()
	q := QuestionConfig{Difficulty: domain.Difficulty("LEGENDARY"), TimeLimitSeconds: 30}
	assert.Equal(t, 200, ScoreQuestion(q, true, 0, cfg))
}
