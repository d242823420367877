package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/dto"
	"sports-trivia/internal/logger"
	"sports-trivia/internal/scoring"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recomputeConcurrency = 8

// GamificationService exposes the leveling curve and total-points
// maintenance operations.
type GamificationService interface {
	// ComputeProgress maps a points balance onto the level curve.
	ComputeProgress(ctx context.Context, totalPoints int) (*dto.LevelProgressResponse, error)
	// ListLevels returns the published level curve.
	ListLevels(ctx context.Context) ([]dto.LevelThresholdResponse, error)
	// SeedDefaultLevels stores the generated curve when none exists yet.
	SeedDefaultLevels(ctx context.Context) error
	// RecomputeTotals rebuilds every user's total-points balance from
	// attempts and bonus awards.
	RecomputeTotals(ctx context.Context) error
}

type gamificationService struct {
	levelRepo   domain.LevelRepository
	userRepo    domain.UserRepository
	attemptRepo domain.QuizAttemptRepository
	awardRepo   domain.AwardRepository
	maxLevel    int

	mu         sync.RWMutex
	thresholds []domain.LevelThreshold // cached curve, level-ordered
}

// NewGamificationService creates a new GamificationService.
func NewGamificationService(
	levelRepo domain.LevelRepository,
	userRepo domain.UserRepository,
	attemptRepo domain.QuizAttemptRepository,
	awardRepo domain.AwardRepository,
	maxLevel int,
) GamificationService {
	if maxLevel <= 0 || maxLevel > scoring.MaxLevel {
		maxLevel = scoring.MaxLevel
	}
	return &gamificationService{
		levelRepo:   levelRepo,
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		awardRepo:   awardRepo,
		maxLevel:    maxLevel,
	}
}

// curve returns the level thresholds, preferring the stored table and
// falling back to the generated curve when the table is empty or
// unreadable.
func (s *gamificationService) curve(ctx context.Context) []domain.LevelThreshold {
	s.mu.RLock()
	if len(s.thresholds) > 0 {
		defer s.mu.RUnlock()
		return s.thresholds
	}
	s.mu.RUnlock()

	stored, err := s.levelRepo.ListLevels(ctx)
	if err != nil || len(stored) == 0 {
		if err != nil {
			logger.Get().Warn("falling back to generated level curve", zap.Error(err))
		}
		stored = generatedCurve(s.maxLevel)
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Level < stored[j].Level })

	s.mu.Lock()
	s.thresholds = stored
	s.mu.Unlock()
	return stored
}

func generatedCurve(maxLevel int) []domain.LevelThreshold {
	levels := make([]domain.LevelThreshold, 0, maxLevel)
	for n := 1; n <= maxLevel; n++ {
		levels = append(levels, domain.LevelThreshold{
			Level:          n,
			PointsRequired: scoring.PointsForLevel(n),
			IsActive:       true,
		})
	}
	return levels
}

// ComputeProgress maps totalPoints onto the curve. Users below the
// first threshold still report level 1 with zero progress floor.
func (s *gamificationService) ComputeProgress(ctx context.Context, totalPoints int) (*dto.LevelProgressResponse, error) {
	if totalPoints < 0 {
		totalPoints = 0
	}
	thresholds := s.curve(ctx)

	level := 1
	currentAt := 0
	for _, t := range thresholds {
		if totalPoints >= t.PointsRequired {
			level = t.Level
			currentAt = t.PointsRequired
		} else {
			break
		}
	}

	progress := &dto.LevelProgressResponse{
		Level:          level,
		TotalPoints:    totalPoints,
		CurrentLevelAt: currentAt,
	}

	if level >= thresholds[len(thresholds)-1].Level {
		progress.IsMaxLevel = true
		progress.NextLevelAt = currentAt
		progress.ProgressToNext = 1
		return progress, nil
	}

	var nextAt int
	for _, t := range thresholds {
		if t.Level == level+1 {
			nextAt = t.PointsRequired
			break
		}
	}
	progress.NextLevelAt = nextAt
	progress.PointsToNextLevel = nextAt - totalPoints
	if span := nextAt - currentAt; span > 0 {
		progress.ProgressToNext = float64(totalPoints-currentAt) / float64(span)
	}
	return progress, nil
}

// ListLevels returns the published curve.
func (s *gamificationService) ListLevels(ctx context.Context) ([]dto.LevelThresholdResponse, error) {
	thresholds := s.curve(ctx)
	out := make([]dto.LevelThresholdResponse, 0, len(thresholds))
	for _, t := range thresholds {
		out = append(out, dto.LevelThresholdResponse{
			Level:          t.Level,
			PointsRequired: t.PointsRequired,
		})
	}
	return out, nil
}

// SeedDefaultLevels writes the generated curve to storage when the
// levels table is empty. Idempotent across restarts.
func (s *gamificationService) SeedDefaultLevels(ctx context.Context) error {
	count, err := s.levelRepo.CountLevels(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	levels := generatedCurve(s.maxLevel)
	if err := s.levelRepo.SaveLevels(ctx, levels); err != nil {
		return err
	}
	logger.Get().Info("seeded default level curve", zap.Int("levels", len(levels)))

	s.mu.Lock()
	s.thresholds = nil
	s.mu.Unlock()
	return nil
}

// RecomputeTotals rebuilds every user's total-points balance as the sum
// of their attempt points and completion bonuses. Users are processed
// concurrently with a bounded group; the first failure cancels the rest.
func (s *gamificationService) RecomputeTotals(ctx context.Context) error {
	userIDs, err := s.userRepo.ListUserIDs(ctx)
	if err != nil {
		return err
	}

	appLogger := logger.Get()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recomputeConcurrency)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			attemptPoints, err := s.attemptRepo.SumPointsByUser(gctx, userID)
			if err != nil {
				return err
			}
			bonusPoints, err := s.awardRepo.SumBonusByUser(gctx, userID)
			if err != nil {
				return err
			}
			return s.userRepo.SetTotalPoints(gctx, userID, attemptPoints+bonusPoints)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	appLogger.Info("recomputed user point totals",
		zap.Int("users", len(userIDs)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
