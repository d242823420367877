package service

import (
	"context"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/dto"
)

// UserService serves user profiles and attempt history.
type UserService interface {
	// GetProfile returns the user's profile with level progress.
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	// GetAttemptHistory returns a page of the user's attempts, newest first.
	GetAttemptHistory(ctx context.Context, userID string, limit, offset int) (*dto.AttemptHistoryResponse, error)
}

type userService struct {
	userRepo     domain.UserRepository
	attemptRepo  domain.QuizAttemptRepository
	gamification GamificationService
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo domain.UserRepository,
	attemptRepo domain.QuizAttemptRepository,
	gamification GamificationService,
) UserService {
	return &userService{
		userRepo:     userRepo,
		attemptRepo:  attemptRepo,
		gamification: gamification,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}

	progress, err := s.gamification.ComputeProgress(ctx, user.TotalPoints)
	if err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		ProfilePictureURL: user.ProfilePictureURL,
		TotalPoints:       user.TotalPoints,
		Progress:          progress,
	}, nil
}

func (s *userService) GetAttemptHistory(ctx context.Context, userID string, limit, offset int) (*dto.AttemptHistoryResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	attempts, total, err := s.attemptRepo.GetAttemptsByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.AttemptHistoryResponse{
		Attempts: make([]dto.AttemptSummaryResponse, 0, len(attempts)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for _, attempt := range attempts {
		resp.Attempts = append(resp.Attempts, dto.AttemptSummaryResponse{
			ID:             attempt.ID,
			QuizID:         attempt.QuizID,
			CorrectAnswers: attempt.CorrectAnswers,
			TotalQuestions: attempt.TotalQuestions,
			Score:          attempt.Score,
			TotalPoints:    attempt.TotalPoints,
			CompletedAt:    attempt.CompletedAt,
		})
	}
	return resp, nil
}
