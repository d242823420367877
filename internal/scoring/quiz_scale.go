package scoring

import "sports-trivia/internal/domain"

// quizScaleWeights is the difficulty weight table used only for
// completion-bonus normalization. It is intentionally distinct from
// the per-question scoring weights.
var quizScaleWeights = map[domain.Difficulty]float64{
	domain.DifficultyEasy:   0.66,
	domain.DifficultyMedium: 1.0,
	domain.DifficultyHard:   1.33,
}

// ComputeQuizScale computes the normalization factor converting raw
// question weights into the fraction of the completion bonus each
// question represents. Each question weighs its quiz-scale difficulty
// weight times its time limit. A quiz with zero total weight (no
// questions, or all zero time limits) yields a scale of 0 rather than
// a division-by-zero artifact.
func ComputeQuizScale(completionBonus float64, questions []QuestionConfig) float64 {
	var sumWeights float64
	for _, q := range questions {
		weight, ok := quizScaleWeights[q.Difficulty]
		if !ok {
			weight = quizScaleWeights[domain.DifficultyMedium]
		}
		sumWeights += weight * q.TimeLimitSeconds
	}
	if sumWeights == 0 {
		return 0
	}
	return completionBonus / sumWeights
}
