package service

import (
	"context"
	"fmt"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/dto"
	"sports-trivia/internal/logger"
	"sports-trivia/internal/scoring"

	"go.uber.org/zap"
)

// QuizService serves quizzes and scores attempt submissions.
type QuizService interface {
	// GetQuiz returns the quiz with its playable questions. Correct
	// option indexes are not included.
	GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	// SubmitAttempt scores a finished quiz run, persists it, credits the
	// user's balance, grants the completion bonus on first completion and
	// updates the quiz's stored ranks.
	SubmitAttempt(ctx context.Context, userID, quizID string, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error)
}

type quizService struct {
	quizRepo     domain.QuizRepository
	attemptRepo  domain.QuizAttemptRepository
	userRepo     domain.UserRepository
	txManager    domain.TransactionManager
	bonusSvc     BonusService
	leaderboards LeaderboardService
	gamification GamificationService
	scoringCfg   scoring.ScoringConfig
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizRepo domain.QuizRepository,
	attemptRepo domain.QuizAttemptRepository,
	userRepo domain.UserRepository,
	txManager domain.TransactionManager,
	bonusSvc BonusService,
	leaderboards LeaderboardService,
	gamification GamificationService,
) QuizService {
	return &quizService{
		quizRepo:     quizRepo,
		attemptRepo:  attemptRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		bonusSvc:     bonusSvc,
		leaderboards: leaderboards,
		gamification: gamification,
		scoringCfg:   scoring.DefaultScoringConfig(),
	}
}

func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	resp := &dto.QuizResponse{
		ID:              quiz.ID,
		TopicID:         quiz.TopicID,
		Title:           quiz.Title,
		Slug:            quiz.Slug,
		Description:     quiz.Description,
		CompletionBonus: quiz.CompletionBonus,
	}
	for _, q := range quiz.Questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			ID:               q.ID,
			Text:             q.Text,
			Options:          q.Options,
			Difficulty:       string(q.Difficulty),
			TimeLimitSeconds: q.TimeLimitSeconds,
		})
	}
	return resp, nil
}

// scoreAnswers grades the submitted answers against the quiz's
// questions. Questions left unanswered score zero. Answers referencing
// unknown questions are rejected.
func (s *quizService) scoreAnswers(quiz *domain.Quiz, answers []dto.SubmittedAnswer) ([]domain.AnswerResult, error) {
	questionsByID := make(map[string]*domain.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questionsByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	seen := make(map[string]bool, len(answers))
	results := make([]domain.AnswerResult, 0, len(answers))
	for _, answer := range answers {
		question, ok := questionsByID[answer.QuestionID]
		if !ok {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("question %s does not belong to this quiz", answer.QuestionID))
		}
		if seen[answer.QuestionID] {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("question %s answered more than once", answer.QuestionID))
		}
		seen[answer.QuestionID] = true

		isCorrect := answer.SelectedOption == question.CorrectOption
		points := scoring.ScoreQuestion(scoring.QuestionConfig{
			Difficulty:       question.Difficulty,
			TimeLimitSeconds: float64(question.TimeLimitSeconds),
		}, isCorrect, answer.TimeSpentSeconds, s.scoringCfg)

		results = append(results, domain.AnswerResult{
			QuestionID:       answer.QuestionID,
			SelectedOption:   answer.SelectedOption,
			IsCorrect:        isCorrect,
			TimeSpentSeconds: answer.TimeSpentSeconds,
			Points:           points,
		})
	}
	return results, nil
}

func (s *quizService) SubmitAttempt(ctx context.Context, userID, quizID string, req *dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
	appLogger := logger.Get()

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	if len(quiz.Questions) == 0 {
		return nil, domain.NewInvalidInputError("quiz has no questions")
	}
	if len(req.Answers) == 0 {
		return nil, domain.NewInvalidInputError("at least one answer is required")
	}

	results, err := s.scoreAnswers(quiz, req.Answers)
	if err != nil {
		return nil, err
	}

	correctAnswers := 0
	questionPoints := 0
	var timeSpent float64
	for _, result := range results {
		if result.IsCorrect {
			correctAnswers++
		}
		questionPoints += result.Points
		timeSpent += result.TimeSpentSeconds
	}

	now := time.Now()
	startedAt := req.StartedAt
	if startedAt.IsZero() {
		startedAt = now
	}
	attempt := &domain.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		CorrectAnswers: correctAnswers,
		TotalQuestions: len(quiz.Questions),
		Score:          float64(correctAnswers) / float64(len(quiz.Questions)),
		TotalPoints:    questionPoints,
		StartedAt:      startedAt,
		CompletedAt:    now,
	}

	// Attempt row and balance credit commit together.
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.attemptRepo.CreateAttempt(txCtx, attempt); err != nil {
			return err
		}
		if questionPoints > 0 {
			return s.userRepo.IncrementTotalPoints(txCtx, userID, questionPoints)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The bonus grant is its own transaction; losing it leaves a
	// consistent attempt behind.
	bonusAwarded, err := s.bonusSvc.AwardCompletionBonus(ctx, quizID, userID)
	if err != nil {
		appLogger.Error("completion bonus grant failed",
			zap.String("quizID", quizID),
			zap.String("userID", userID),
			zap.Error(err))
		bonusAwarded = 0
	}

	if err := s.leaderboards.RecordQuizResult(ctx, quizID, userID, questionPoints, timeSpent); err != nil {
		appLogger.Error("quiz rank update failed",
			zap.String("quizID", quizID),
			zap.String("userID", userID),
			zap.Error(err))
	}

	resp := &dto.SubmitAttemptResponse{
		AttemptID:      attempt.ID,
		CorrectAnswers: correctAnswers,
		TotalQuestions: len(quiz.Questions),
		QuestionPoints: questionPoints,
		BonusAwarded:   bonusAwarded,
		TotalPoints:    questionPoints + bonusAwarded,
	}
	questionsByID := make(map[string]*domain.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questionsByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}
	for _, result := range results {
		resp.Results = append(resp.Results, dto.AnswerResultResponse{
			QuestionID:     result.QuestionID,
			SelectedOption: result.SelectedOption,
			CorrectOption:  questionsByID[result.QuestionID].CorrectOption,
			IsCorrect:      result.IsCorrect,
			Points:         result.Points,
		})
	}

	if user, err := s.userRepo.GetUserByID(ctx, userID); err == nil && user != nil {
		if progress, err := s.gamification.ComputeProgress(ctx, user.TotalPoints); err == nil {
			resp.Progress = progress
		}
	}

	return resp, nil
}
