package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sports-trivia/internal/cache"
	"sports-trivia/internal/domain"
	"sports-trivia/internal/dto"
	"sports-trivia/internal/logger"

	"go.uber.org/zap"
)

const leaderboardCacheService = "leaderboard"

// LeaderboardService builds ranked leaderboards over attempt scores.
type LeaderboardService interface {
	// GetGlobalLeaderboard ranks users across all quizzes for the period.
	GetGlobalLeaderboard(ctx context.Context, period domain.LeaderboardPeriod, limit int) (*dto.LeaderboardResponse, error)
	// GetTopicLeaderboard ranks users over one topic's quizzes.
	GetTopicLeaderboard(ctx context.Context, topicID string, period domain.LeaderboardPeriod, limit int) (*dto.LeaderboardResponse, error)
	// GetUserQuizRanks returns the user's stored per-quiz ranks. An empty
	// quizIDs slice yields an empty map without touching storage.
	GetUserQuizRanks(ctx context.Context, userID string, quizIDs []string) (*dto.UserQuizRanksResponse, error)
	// RecordQuizResult stores the user's result on a quiz and refreshes
	// that quiz's stored ranks.
	RecordQuizResult(ctx context.Context, quizID, userID string, score int, timeSeconds float64) error
}

type leaderboardService struct {
	leaderboardRepo domain.LeaderboardRepository
	topicRepo       domain.TopicRepository
	cache           domain.Cache
	cacheTTL        time.Duration
	defaultLimit    int
	maxLimit        int
}

// NewLeaderboardService creates a new LeaderboardService. cache may be
// nil, in which case every read hits storage.
func NewLeaderboardService(
	leaderboardRepo domain.LeaderboardRepository,
	topicRepo domain.TopicRepository,
	cacheClient domain.Cache,
	cacheTTL time.Duration,
	defaultLimit, maxLimit int,
) LeaderboardService {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &leaderboardService{
		leaderboardRepo: leaderboardRepo,
		topicRepo:       topicRepo,
		cache:           cacheClient,
		cacheTTL:        cacheTTL,
		defaultLimit:    defaultLimit,
		maxLimit:        maxLimit,
	}
}

func (s *leaderboardService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// rankEntries converts ordered score rows into ranked entries. The
// repository already orders rows deterministically, so ranks are the
// positional index; users with equal scores are still totally ordered
// by earliest completion and then user id.
func rankEntries(scores []domain.UserScore, period domain.LeaderboardPeriod) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(scores))
	for i, score := range scores {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:    score.UserID,
			UserName:  score.UserName,
			UserImage: score.UserImage,
			Score:     score.Score,
			Attempts:  score.Attempts,
			Rank:      i + 1,
			Period:    period,
		})
	}
	return entries
}

func (s *leaderboardService) fromCache(ctx context.Context, key string) *dto.LeaderboardResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("leaderboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var resp dto.LeaderboardResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		logger.Get().Warn("leaderboard cache entry corrupted", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &resp
}

func (s *leaderboardService) toCache(ctx context.Context, key string, resp *dto.LeaderboardResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		logger.Get().Warn("leaderboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *leaderboardService) GetGlobalLeaderboard(ctx context.Context, period domain.LeaderboardPeriod, limit int) (*dto.LeaderboardResponse, error) {
	limit = s.clampLimit(limit)
	key := cache.GenerateCacheKey(leaderboardCacheService, "global", string(period), fmt.Sprintf("limit%d", limit))
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	since := period.WindowStart(time.Now())
	scores, err := s.leaderboardRepo.AggregateGlobalScores(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaderboardResponse{
		Period:  period,
		Entries: rankEntries(scores, period),
	}
	s.toCache(ctx, key, resp)
	return resp, nil
}

func (s *leaderboardService) GetTopicLeaderboard(ctx context.Context, topicID string, period domain.LeaderboardPeriod, limit int) (*dto.LeaderboardResponse, error) {
	topic, err := s.topicRepo.GetTopicByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, domain.NewTopicNotFoundError(topicID)
	}

	limit = s.clampLimit(limit)
	key := cache.GenerateCacheKey(leaderboardCacheService, "topic", topicID, string(period), fmt.Sprintf("limit%d", limit))
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	since := period.WindowStart(time.Now())
	scores, err := s.leaderboardRepo.AggregateTopicScores(ctx, topicID, since, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaderboardResponse{
		Period:  period,
		TopicID: topicID,
		Entries: rankEntries(scores, period),
	}
	s.toCache(ctx, key, resp)
	return resp, nil
}

func (s *leaderboardService) GetUserQuizRanks(ctx context.Context, userID string, quizIDs []string) (*dto.UserQuizRanksResponse, error) {
	if len(quizIDs) == 0 {
		return &dto.UserQuizRanksResponse{Ranks: map[string]int{}}, nil
	}
	ranks, err := s.leaderboardRepo.GetUserQuizRanks(ctx, userID, quizIDs)
	if err != nil {
		return nil, err
	}
	return &dto.UserQuizRanksResponse{Ranks: ranks}, nil
}

func (s *leaderboardService) RecordQuizResult(ctx context.Context, quizID, userID string, score int, timeSeconds float64) error {
	if err := s.leaderboardRepo.UpsertQuizRankRow(ctx, quizID, userID, score, timeSeconds); err != nil {
		return err
	}
	return s.leaderboardRepo.RefreshQuizRanks(ctx, quizID)
}
