package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/repository/models"
	"sports-trivia/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxAwardRepository struct {
	db *sqlx.DB
}

// NewSQLXAwardRepository creates a new instance of sqlxAwardRepository.
func NewSQLXAwardRepository(db *sqlx.DB) domain.AwardRepository {
	return &sqlxAwardRepository{db: db}
}

// CreateAward inserts a completion bonus award. The unique index on
// (quiz_id, user_id) is the arbiter: a duplicate insert, including one
// racing a concurrent submission, surfaces as domain.ErrAlreadyAwarded.
func (r *sqlxAwardRepository) CreateAward(ctx context.Context, award *domain.CompletionBonusAward) error {
	if award.ID == "" {
		award.ID = util.NewULID()
	}
	if award.AwardedAt.IsZero() {
		award.AwardedAt = time.Now()
	}
	award.CreatedAt = time.Now()

	m := &models.CompletionBonusAward{
		ID:          award.ID,
		QuizID:      award.QuizID,
		UserID:      award.UserID,
		BonusPoints: award.BonusPoints,
		AwardedAt:   award.AwardedAt,
		CreatedAt:   award.CreatedAt,
	}

	query := `INSERT INTO completion_bonus_awards (id, quiz_id, user_id, bonus_points, awarded_at, created_at)
	          VALUES (:1, :2, :3, :4, :5, :6)`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query,
		m.ID, m.QuizID, m.UserID, m.BonusPoints, m.AwardedAt, m.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyAwarded
		}
		return fmt.Errorf("failed to create completion bonus award: %w", err)
	}
	return nil
}

// HasAward reports whether the user already holds the quiz's bonus.
func (r *sqlxAwardRepository) HasAward(ctx context.Context, quizID, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM completion_bonus_awards WHERE quiz_id = :1 AND user_id = :2`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &count, query, quizID, userID); err != nil {
		return false, fmt.Errorf("failed to check completion bonus award: %w", err)
	}
	return count > 0, nil
}

// SumBonusByUser returns the sum of bonus points ever awarded to one user.
func (r *sqlxAwardRepository) SumBonusByUser(ctx context.Context, userID string) (int, error) {
	var sum int
	query := `SELECT COALESCE(SUM(bonus_points), 0) FROM completion_bonus_awards WHERE user_id = :1`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &sum, query, userID); err != nil {
		return 0, fmt.Errorf("failed to sum bonus points: %w", err)
	}
	return sum, nil
}

// isUniqueViolation reports whether err is Oracle's unique constraint
// violation (ORA-00001).
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "ORA-00001") || strings.Contains(msg, "unique constraint")
}
