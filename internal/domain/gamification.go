package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrAlreadyAwarded is returned by AwardRepository.CreateAward when a
// completion bonus award already exists for the (quiz, user) pair.
var ErrAlreadyAwarded = errors.New("completion bonus already awarded")

// CompletionBonusAward marks that a user received a quiz's completion
// bonus. At most one exists per (quiz, user); the row is never updated
// or deleted once created.
type CompletionBonusAward struct {
	ID          string
	QuizID      string
	UserID      string
	BonusPoints int
	AwardedAt   time.Time
	CreatedAt   time.Time
}

// LevelThreshold is one row of the stored level curve.
type LevelThreshold struct {
	Level          int
	PointsRequired int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LeaderboardPeriod is the aggregation window for leaderboard scoring.
type LeaderboardPeriod string

const (
	PeriodDaily   LeaderboardPeriod = "daily"
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodMonthly LeaderboardPeriod = "monthly"
	PeriodAllTime LeaderboardPeriod = "all-time"
)

// ParsePeriod converts a string to a LeaderboardPeriod. Empty input
// defaults to all-time; unknown values are rejected.
func ParsePeriod(s string) (LeaderboardPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PeriodAllTime, nil
	case "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "all-time", "alltime":
		return PeriodAllTime, nil
	default:
		return "", NewInvalidPeriodError(s)
	}
}

// WindowStart returns the lower time bound of the period relative to
// now, or nil for the unbounded all-time window. Weeks start on Sunday.
func (p LeaderboardPeriod) WindowStart(now time.Time) *time.Time {
	switch p {
	case PeriodDaily:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return &start
	case PeriodWeekly:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start = start.AddDate(0, 0, -int(now.Weekday()))
		return &start
	case PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &start
	default:
		return nil
	}
}

// LeaderboardEntry is one ranked row of a built leaderboard.
type LeaderboardEntry struct {
	UserID    string            `json:"userId"`
	UserName  string            `json:"userName"`
	UserImage string            `json:"userImage,omitempty"`
	Score     int               `json:"score"`
	Attempts  int               `json:"attempts"`
	Rank      int               `json:"rank"`
	Period    LeaderboardPeriod `json:"period"`
}

// UserScore is an aggregated score row before ranks are assigned.
// FirstCompletedAt is the earliest qualifying completion in the window
// and acts as the deterministic tie-break after score.
type UserScore struct {
	UserID           string
	UserName         string
	UserImage        string
	Score            int
	Attempts         int
	FirstCompletedAt time.Time
}

// AwardRepository defines the interface for completion bonus award
// persistence. CreateAward must be an atomic check-and-insert backed by
// a storage uniqueness constraint on (quiz_id, user_id): a concurrent
// duplicate surfaces as ErrAlreadyAwarded, never as a second row.
type AwardRepository interface {
	CreateAward(ctx context.Context, award *CompletionBonusAward) error
	HasAward(ctx context.Context, quizID, userID string) (bool, error)
	// SumBonusByUser returns the sum of bonus points ever awarded to one user.
	SumBonusByUser(ctx context.Context, userID string) (int, error)
}

// LeaderboardRepository defines aggregated score reads for leaderboard
// construction. Results are ordered by score descending, then earliest
// completion, then user id, and truncated to limit.
type LeaderboardRepository interface {
	AggregateGlobalScores(ctx context.Context, since *time.Time, limit int) ([]UserScore, error)
	AggregateTopicScores(ctx context.Context, topicID string, since *time.Time, limit int) ([]UserScore, error)
	// GetUserQuizRanks returns the user's stored rank per quiz id. Quizzes
	// the user has no rank for are absent from the map.
	GetUserQuizRanks(ctx context.Context, userID string, quizIDs []string) (map[string]int, error)
	// UpsertQuizRankRow records a user's best result on a quiz.
	UpsertQuizRankRow(ctx context.Context, quizID, userID string, bestScore int, bestTimeSeconds float64) error
	// RefreshQuizRanks recomputes stored ranks for one quiz.
	RefreshQuizRanks(ctx context.Context, quizID string) error
}

// LevelRepository defines persistence for the stored level curve.
type LevelRepository interface {
	ListLevels(ctx context.Context) ([]LevelThreshold, error)
	CountLevels(ctx context.Context) (int, error)
	SaveLevels(ctx context.Context, levels []LevelThreshold) error
}
