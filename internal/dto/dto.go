package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sports-trivia/internal/domain"
)

// AuthClaims are the JWT claims issued by the auth service.
type AuthClaims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"typ"` // access | refresh
	jwt.RegisteredClaims
}

// GoogleUserInfo is the subset of Google's userinfo response we use.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// QuestionResponse is a question as served to clients. The correct
// option index is never exposed here.
type QuestionResponse struct {
	ID               string   `json:"id"`
	Text             string   `json:"text"`
	Options          []string `json:"options"`
	Difficulty       string   `json:"difficulty"`
	TimeLimitSeconds int      `json:"timeLimitSeconds"`
}

// QuizResponse is a quiz with its playable question set.
type QuizResponse struct {
	ID              string             `json:"id"`
	TopicID         string             `json:"topicId"`
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Description     string             `json:"description,omitempty"`
	CompletionBonus int                `json:"completionBonus"`
	Questions       []QuestionResponse `json:"questions"`
}

// SubmittedAnswer is one answered question in an attempt submission.
type SubmittedAnswer struct {
	QuestionID       string  `json:"questionId"`
	SelectedOption   int     `json:"selectedOption"`
	TimeSpentSeconds float64 `json:"timeSpentSeconds"`
}

// SubmitAttemptRequest is the payload for submitting a finished quiz run.
type SubmitAttemptRequest struct {
	StartedAt time.Time         `json:"startedAt"`
	Answers   []SubmittedAnswer `json:"answers"`
}

// AnswerResultResponse is the scored outcome of one answer.
type AnswerResultResponse struct {
	QuestionID     string `json:"questionId"`
	SelectedOption int    `json:"selectedOption"`
	CorrectOption  int    `json:"correctOption"`
	IsCorrect      bool   `json:"isCorrect"`
	Points         int    `json:"points"`
}

// SubmitAttemptResponse summarizes a scored attempt.
type SubmitAttemptResponse struct {
	AttemptID      string                 `json:"attemptId"`
	CorrectAnswers int                    `json:"correctAnswers"`
	TotalQuestions int                    `json:"totalQuestions"`
	QuestionPoints int                    `json:"questionPoints"`
	BonusAwarded   int                    `json:"bonusAwarded"`
	TotalPoints    int                    `json:"totalPoints"`
	Results        []AnswerResultResponse `json:"results"`
	Progress       *LevelProgressResponse `json:"progress,omitempty"`
}

// LevelProgressResponse describes where the user sits on the level curve.
type LevelProgressResponse struct {
	Level             int     `json:"level"`
	TotalPoints       int     `json:"totalPoints"`
	CurrentLevelAt    int     `json:"currentLevelAt"`
	NextLevelAt       int     `json:"nextLevelAt"`
	ProgressToNext    float64 `json:"progressToNext"` // 0..1, 1 at max level
	IsMaxLevel        bool    `json:"isMaxLevel"`
	PointsToNextLevel int     `json:"pointsToNextLevel"`
}

// UserProfileResponse is the authenticated user's profile with level
// progress.
type UserProfileResponse struct {
	ID                string                 `json:"id"`
	Email             string                 `json:"email"`
	Name              string                 `json:"name,omitempty"`
	ProfilePictureURL string                 `json:"profilePictureUrl,omitempty"`
	TotalPoints       int                    `json:"totalPoints"`
	Progress          *LevelProgressResponse `json:"progress"`
}

// LeaderboardResponse is a built leaderboard for one scope and period.
type LeaderboardResponse struct {
	Period  domain.LeaderboardPeriod `json:"period"`
	TopicID string                   `json:"topicId,omitempty"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// UserQuizRanksResponse maps quiz ids to the user's stored rank.
type UserQuizRanksResponse struct {
	Ranks map[string]int `json:"ranks"`
}

// LevelThresholdResponse is one row of the published level curve.
type LevelThresholdResponse struct {
	Level          int `json:"level"`
	PointsRequired int `json:"pointsRequired"`
}

// AttemptSummaryResponse is one row of a user's attempt history.
type AttemptSummaryResponse struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	Score          float64   `json:"score"`
	TotalPoints    int       `json:"totalPoints"`
	CompletedAt    time.Time `json:"completedAt"`
}

// AttemptHistoryResponse is a page of attempt history.
type AttemptHistoryResponse struct {
	Attempts []AttemptSummaryResponse `json:"attempts"`
	Total    int                      `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}
