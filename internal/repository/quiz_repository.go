package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/repository/models"
	"sports-trivia/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toQuestionDomain(m *models.Question) domain.Question {
	return domain.Question{
		ID:               m.ID,
		QuizID:           m.QuizID,
		Text:             m.Text,
		Options:          []string(m.Options),
		CorrectOption:    m.CorrectOption,
		Difficulty:       domain.ParseDifficulty(m.Difficulty),
		TimeLimitSeconds: m.TimeLimitSeconds,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toQuizDomain(m *models.Quiz, questions []models.Question) *domain.Quiz {
	quiz := &domain.Quiz{
		ID:              m.ID,
		TopicID:         m.TopicID,
		Title:           m.Title,
		Slug:            m.Slug,
		Description:     m.Description.String,
		CompletionBonus: m.CompletionBonus,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for i := range questions {
		quiz.Questions = append(quiz.Questions, toQuestionDomain(&questions[i]))
	}
	return quiz
}

// GetQuizByID retrieves a quiz with its questions. Returns (nil, nil)
// when no matching quiz exists.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, quizID string) (*domain.Quiz, error) {
	executor := GetExecutor(ctx, r.db)

	var quiz models.Quiz
	quizQuery := `SELECT * FROM quizzes WHERE id = :1 AND deleted_at IS NULL`
	if err := executor.GetContext(ctx, &quiz, quizQuery, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}

	var questions []models.Question
	questionQuery := `SELECT * FROM questions WHERE quiz_id = :1 AND deleted_at IS NULL ORDER BY id`
	if err := executor.SelectContext(ctx, &questions, questionQuery, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	return toQuizDomain(&quiz, questions), nil
}

// GetQuizzesByTopic returns the most recent quizzes for a topic,
// without their question sets.
func (r *sqlxQuizRepository) GetQuizzesByTopic(ctx context.Context, topicID string, limit int) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT * FROM (
	            SELECT * FROM quizzes
	            WHERE topic_id = :1 AND deleted_at IS NULL
	            ORDER BY created_at DESC
	          ) WHERE ROWNUM <= :2`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, topicID, limit); err != nil {
		return nil, fmt.Errorf("failed to get quizzes by topic: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toQuizDomain(&rows[i], nil))
	}
	return quizzes, nil
}

// SaveQuiz inserts a quiz and its questions. New IDs are generated for
// the quiz and any question without one.
func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	now := time.Now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	quizModel := &models.Quiz{
		ID:              quiz.ID,
		TopicID:         quiz.TopicID,
		Title:           quiz.Title,
		Slug:            quiz.Slug,
		Description:     util.StringToNullString(quiz.Description),
		CompletionBonus: quiz.CompletionBonus,
		CreatedAt:       quiz.CreatedAt,
		UpdatedAt:       quiz.UpdatedAt,
	}

	executor := GetExecutor(ctx, r.db)

	quizQuery := `INSERT INTO quizzes (id, topic_id, title, slug, description, completion_bonus, created_at, updated_at)
	              VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`
	if _, err := executor.ExecContext(ctx, quizQuery,
		quizModel.ID, quizModel.TopicID, quizModel.Title, quizModel.Slug, quizModel.Description,
		quizModel.CompletionBonus, quizModel.CreatedAt, quizModel.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	questionQuery := `INSERT INTO questions (id, quiz_id, text, options, correct_option, difficulty, time_limit_seconds, created_at, updated_at)
	                  VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.QuizID = quiz.ID
		q.CreatedAt = now
		q.UpdatedAt = now

		if _, err := executor.ExecContext(ctx, questionQuery,
			q.ID, q.QuizID, q.Text, models.StringSlice(q.Options), q.CorrectOption,
			string(q.Difficulty), q.TimeLimitSeconds, q.CreatedAt, q.UpdatedAt); err != nil {
			return fmt.Errorf("failed to save question %s: %w", q.ID, err)
		}
	}

	return nil
}
