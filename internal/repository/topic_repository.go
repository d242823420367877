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

type sqlxTopicRepository struct {
	db *sqlx.DB
}

// NewSQLXTopicRepository creates a new instance of sqlxTopicRepository.
func NewSQLXTopicRepository(db *sqlx.DB) domain.TopicRepository {
	return &sqlxTopicRepository{db: db}
}

func toTopicDomain(m *models.Topic) *domain.Topic {
	return &domain.Topic{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description.String,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GetTopicByID retrieves a topic by ID. Returns (nil, nil) when no
// matching topic exists.
func (r *sqlxTopicRepository) GetTopicByID(ctx context.Context, topicID string) (*domain.Topic, error) {
	var m models.Topic
	query := `SELECT * FROM topics WHERE id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &m, query, topicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic by id: %w", err)
	}
	return toTopicDomain(&m), nil
}

// ListTopics returns all topics ordered by name.
func (r *sqlxTopicRepository) ListTopics(ctx context.Context) ([]*domain.Topic, error) {
	var rows []models.Topic
	query := `SELECT * FROM topics WHERE deleted_at IS NULL ORDER BY name`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	topics := make([]*domain.Topic, 0, len(rows))
	for i := range rows {
		topics = append(topics, toTopicDomain(&rows[i]))
	}
	return topics, nil
}

// SaveTopic inserts a new topic.
func (r *sqlxTopicRepository) SaveTopic(ctx context.Context, topic *domain.Topic) error {
	if topic.ID == "" {
		topic.ID = util.NewULID()
	}
	topic.CreatedAt = time.Now()
	topic.UpdatedAt = time.Now()

	m := &models.Topic{
		ID:          topic.ID,
		Name:        topic.Name,
		Slug:        topic.Slug,
		Description: util.StringToNullString(topic.Description),
		CreatedAt:   topic.CreatedAt,
		UpdatedAt:   topic.UpdatedAt,
	}

	query := `INSERT INTO topics (id, name, slug, description, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6)`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query,
		m.ID, m.Name, m.Slug, m.Description, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save topic: %w", err)
	}
	return nil
}
