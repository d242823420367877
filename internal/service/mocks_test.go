package service

import (
	"context"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, quizID string) (*domain.Quiz, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuizzesByTopic(ctx context.Context, topicID string, limit int) ([]*domain.Quiz, error) {
	args := m.Called(ctx, topicID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

// --- MockTopicRepository ---

type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) GetTopicByID(ctx context.Context, topicID string) (*domain.Topic, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Topic), args.Error(1)
}

func (m *MockTopicRepository) ListTopics(ctx context.Context) ([]*domain.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Topic), args.Error(1)
}

func (m *MockTopicRepository) SaveTopic(ctx context.Context, topic *domain.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

// --- MockUserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTotalPoints(ctx context.Context, userID string, delta int) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

func (m *MockUserRepository) SetTotalPoints(ctx context.Context, userID string, points int) error {
	args := m.Called(ctx, userID, points)
	return args.Error(0)
}

func (m *MockUserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockAttemptRepository ---

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAttemptsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.QuizAttempt, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.QuizAttempt), args.Int(1), args.Error(2)
}

func (m *MockAttemptRepository) SumPointsByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// --- MockAwardRepository ---

type MockAwardRepository struct {
	mock.Mock
}

func (m *MockAwardRepository) CreateAward(ctx context.Context, award *domain.CompletionBonusAward) error {
	args := m.Called(ctx, award)
	return args.Error(0)
}

func (m *MockAwardRepository) HasAward(ctx context.Context, quizID, userID string) (bool, error) {
	args := m.Called(ctx, quizID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAwardRepository) SumBonusByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// --- MockLeaderboardRepository ---

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) AggregateGlobalScores(ctx context.Context, since *time.Time, limit int) ([]domain.UserScore, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserScore), args.Error(1)
}

func (m *MockLeaderboardRepository) AggregateTopicScores(ctx context.Context, topicID string, since *time.Time, limit int) ([]domain.UserScore, error) {
	args := m.Called(ctx, topicID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserScore), args.Error(1)
}

func (m *MockLeaderboardRepository) GetUserQuizRanks(ctx context.Context, userID string, quizIDs []string) (map[string]int, error) {
	args := m.Called(ctx, userID, quizIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockLeaderboardRepository) UpsertQuizRankRow(ctx context.Context, quizID, userID string, bestScore int, bestTimeSeconds float64) error {
	args := m.Called(ctx, quizID, userID, bestScore, bestTimeSeconds)
	return args.Error(0)
}

func (m *MockLeaderboardRepository) RefreshQuizRanks(ctx context.Context, quizID string) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}

// --- MockLevelRepository ---

type MockLevelRepository struct {
	mock.Mock
}

func (m *MockLevelRepository) ListLevels(ctx context.Context) ([]domain.LevelThreshold, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LevelThreshold), args.Error(1)
}

func (m *MockLevelRepository) CountLevels(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLevelRepository) SaveLevels(ctx context.Context, levels []domain.LevelThreshold) error {
	args := m.Called(ctx, levels)
	return args.Error(0)
}

// --- MockTransactionManager ---

// MockTransactionManager runs the callback inline so repository mocks
// observe the same context the service passed in.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// --- MockBonusService ---

type MockBonusService struct {
	mock.Mock
}

func (m *MockBonusService) AwardCompletionBonus(ctx context.Context, quizID, userID string) (int, error) {
	args := m.Called(ctx, quizID, userID)
	return args.Int(0), args.Error(1)
}

// --- MockLeaderboardService ---

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) GetGlobalLeaderboard(ctx context.Context, period domain.LeaderboardPeriod, limit int) (*dto.LeaderboardResponse, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LeaderboardResponse), args.Error(1)
}

func (m *MockLeaderboardService) GetTopicLeaderboard(ctx context.Context, topicID string, period domain.LeaderboardPeriod, limit int) (*dto.LeaderboardResponse, error) {
	args := m.Called(ctx, topicID, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LeaderboardResponse), args.Error(1)
}

func (m *MockLeaderboardService) GetUserQuizRanks(ctx context.Context, userID string, quizIDs []string) (*dto.UserQuizRanksResponse, error) {
	args := m.Called(ctx, userID, quizIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserQuizRanksResponse), args.Error(1)
}

func (m *MockLeaderboardService) RecordQuizResult(ctx context.Context, quizID, userID string, score int, timeSeconds float64) error {
	args := m.Called(ctx, quizID, userID, score, timeSeconds)
	return args.Error(0)
}

// --- MockGamificationService ---

type MockGamificationService struct {
	mock.Mock
}

func (m *MockGamificationService) ComputeProgress(ctx context.Context, totalPoints int) (*dto.LevelProgressResponse, error) {
	args := m.Called(ctx, totalPoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LevelProgressResponse), args.Error(1)
}

func (m *MockGamificationService) ListLevels(ctx context.Context) ([]dto.LevelThresholdResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.LevelThresholdResponse), args.Error(1)
}

func (m *MockGamificationService) SeedDefaultLevels(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGamificationService) RecomputeTotals(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockCache ---

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
