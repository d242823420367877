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

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toUserModel(user *domain.User) *models.User {
	m := &models.User{
		ID:                user.ID,
		GoogleID:          user.GoogleID,
		Email:             user.Email,
		Name:              util.StringToNullString(user.Name),
		ProfilePictureURL: util.StringToNullString(user.ProfilePictureURL),
		TotalPoints:       user.TotalPoints,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
	if user.DeletedAt != nil {
		m.DeletedAt = sql.NullTime{Time: *user.DeletedAt, Valid: true}
	}
	return m
}

func toUserDomain(m *models.User) *domain.User {
	user := &domain.User{
		ID:          m.ID,
		GoogleID:    m.GoogleID,
		Email:       m.Email,
		TotalPoints: m.TotalPoints,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Name.Valid {
		user.Name = m.Name.String
	}
	if m.ProfilePictureURL.Valid {
		user.ProfilePictureURL = m.ProfilePictureURL.String
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		user.DeletedAt = &t
	}
	return user
}

// CreateUser inserts a new user into the database, assigning a new
// ULID when the caller did not set one.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	m := toUserModel(user)
	query := `INSERT INTO users (id, google_id, email, name, profile_picture_url, total_points, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query,
		m.ID, m.GoogleID, m.Email, m.Name, m.ProfilePictureURL, m.TotalPoints, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByGoogleID retrieves a user by their Google ID. Returns
// (nil, nil) when no matching user exists.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var m models.User
	query := `SELECT * FROM users WHERE google_id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &m, query, googleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google_id: %w", err)
	}
	return toUserDomain(&m), nil
}

// GetUserByID retrieves a user by their internal ID. Returns
// (nil, nil) when no matching user exists.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	query := `SELECT * FROM users WHERE id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &m, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toUserDomain(&m), nil
}

// UpdateUser updates an existing user's profile fields.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	m := toUserModel(user)
	query := `UPDATE users SET
	            email = :1,
	            name = :2,
	            profile_picture_url = :3,
	            updated_at = :4
	          WHERE id = :5 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		m.Email, m.Name, m.ProfilePictureURL, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementTotalPoints adds delta to the user's lifetime points. The
// single UPDATE keeps concurrent increments from losing each other.
func (r *sqlxUserRepository) IncrementTotalPoints(ctx context.Context, userID string, delta int) error {
	query := `UPDATE users SET
	            total_points = total_points + :1,
	            updated_at = :2
	          WHERE id = :3 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, delta, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to increment total points: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError(userID)
	}
	return nil
}

// SetTotalPoints overwrites the user's lifetime points balance.
func (r *sqlxUserRepository) SetTotalPoints(ctx context.Context, userID string, points int) error {
	query := `UPDATE users SET
	            total_points = :1,
	            updated_at = :2
	          WHERE id = :3 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, points, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set total points: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError(userID)
	}
	return nil
}

// ListUserIDs returns the ids of all non-deleted users.
func (r *sqlxUserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	query := `SELECT id FROM users WHERE deleted_at IS NULL ORDER BY id`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	return ids, nil
}
