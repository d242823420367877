package repository

import (
	"context"
	"fmt"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/repository/models"
	"sports-trivia/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.QuizAttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toAttemptDomain(m *models.QuizAttempt) domain.QuizAttempt {
	attempt := domain.QuizAttempt{
		ID:             m.ID,
		UserID:         m.UserID,
		QuizID:         m.QuizID,
		CorrectAnswers: m.CorrectAnswers,
		TotalQuestions: m.TotalQuestions,
		Score:          m.Score,
		TotalPoints:    m.TotalPoints,
		StartedAt:      m.StartedAt,
		CompletedAt:    m.CompletedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		attempt.DeletedAt = &t
	}
	return attempt
}

// CreateAttempt persists a completed quiz attempt.
func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	now := time.Now()
	attempt.CreatedAt = now
	attempt.UpdatedAt = now

	m := &models.QuizAttempt{
		ID:             attempt.ID,
		UserID:         attempt.UserID,
		QuizID:         attempt.QuizID,
		CorrectAnswers: attempt.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		Score:          attempt.Score,
		TotalPoints:    attempt.TotalPoints,
		StartedAt:      attempt.StartedAt,
		CompletedAt:    attempt.CompletedAt,
		CreatedAt:      attempt.CreatedAt,
		UpdatedAt:      attempt.UpdatedAt,
	}

	query := `INSERT INTO quiz_attempts (id, user_id, quiz_id, correct_answers, total_questions, score, total_points, started_at, completed_at, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11)`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query,
		m.ID, m.UserID, m.QuizID, m.CorrectAnswers, m.TotalQuestions, m.Score, m.TotalPoints,
		m.StartedAt, m.CompletedAt, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

// GetAttemptsByUserID returns a page of the user's attempts, newest
// first, along with the total attempt count.
func (r *sqlxAttemptRepository) GetAttemptsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.QuizAttempt, int, error) {
	executor := GetExecutor(ctx, r.db)

	var total int
	countQuery := `SELECT COUNT(*) FROM quiz_attempts WHERE user_id = :1 AND deleted_at IS NULL`
	if err := executor.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz attempts: %w", err)
	}

	var rows []models.QuizAttempt
	pageQuery := `SELECT id, user_id, quiz_id, correct_answers, total_questions, score, total_points, started_at, completed_at, created_at, updated_at, deleted_at
	              FROM (
	                SELECT a.*, ROW_NUMBER() OVER (ORDER BY a.completed_at DESC, a.id DESC) AS rn
	                FROM quiz_attempts a
	                WHERE a.user_id = :1 AND a.deleted_at IS NULL
	              ) WHERE rn > :2 AND rn <= :3`
	if err := executor.SelectContext(ctx, &rows, pageQuery, userID, offset, offset+limit); err != nil {
		return nil, 0, fmt.Errorf("failed to get quiz attempts: %w", err)
	}

	attempts := make([]domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toAttemptDomain(&rows[i]))
	}
	return attempts, total, nil
}

// SumPointsByUser returns the sum of attempt points for one user.
func (r *sqlxAttemptRepository) SumPointsByUser(ctx context.Context, userID string) (int, error) {
	var sum int
	query := `SELECT COALESCE(SUM(total_points), 0) FROM quiz_attempts WHERE user_id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &sum, query, userID); err != nil {
		return 0, fmt.Errorf("failed to sum attempt points: %w", err)
	}
	return sum, nil
}
