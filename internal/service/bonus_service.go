package service

import (
	"context"
	"errors"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/logger"

	"go.uber.org/zap"
)

// BonusService grants quiz completion bonuses.
type BonusService interface {
	// AwardCompletionBonus grants the quiz's completion bonus to the user
	// if they have not received it before. It returns the points granted:
	// 0 when the bonus was already held, the quiz has no bonus, or the
	// quiz does not exist. Granting the award and crediting the user's
	// balance happen in one transaction.
	AwardCompletionBonus(ctx context.Context, quizID, userID string) (int, error)
}

type bonusService struct {
	quizRepo  domain.QuizRepository
	awardRepo domain.AwardRepository
	userRepo  domain.UserRepository
	txManager domain.TransactionManager
}

// NewBonusService creates a new BonusService.
func NewBonusService(
	quizRepo domain.QuizRepository,
	awardRepo domain.AwardRepository,
	userRepo domain.UserRepository,
	txManager domain.TransactionManager,
) BonusService {
	return &bonusService{
		quizRepo:  quizRepo,
		awardRepo: awardRepo,
		userRepo:  userRepo,
		txManager: txManager,
	}
}

func (s *bonusService) AwardCompletionBonus(ctx context.Context, quizID, userID string) (int, error) {
	appLogger := logger.Get()

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return 0, err
	}
	if quiz == nil {
		appLogger.Warn("completion bonus requested for unknown quiz", zap.String("quizID", quizID))
		return 0, nil
	}

	bonus := quiz.CompletionBonus
	if bonus <= 0 {
		return 0, nil
	}

	// Cheap pre-check; the unique index stays the arbiter under races.
	awarded, err := s.awardRepo.HasAward(ctx, quizID, userID)
	if err != nil {
		return 0, err
	}
	if awarded {
		return 0, nil
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		award := &domain.CompletionBonusAward{
			QuizID:      quizID,
			UserID:      userID,
			BonusPoints: bonus,
			AwardedAt:   time.Now(),
		}
		if err := s.awardRepo.CreateAward(txCtx, award); err != nil {
			return err
		}
		return s.userRepo.IncrementTotalPoints(txCtx, userID, bonus)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAwarded) {
			// Lost a race with a concurrent submission; the other writer's
			// credit stands and this one grants nothing.
			return 0, nil
		}
		return 0, err
	}

	appLogger.Info("completion bonus awarded",
		zap.String("quizID", quizID),
		zap.String("userID", userID),
		zap.Int("bonus", bonus))
	return bonus, nil
}
