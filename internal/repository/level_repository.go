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

type sqlxLevelRepository struct {
	db *sqlx.DB
}

// NewSQLXLevelRepository creates a new instance of sqlxLevelRepository.
func NewSQLXLevelRepository(db *sqlx.DB) domain.LevelRepository {
	return &sqlxLevelRepository{db: db}
}

// ListLevels returns the active level curve ordered by level number.
func (r *sqlxLevelRepository) ListLevels(ctx context.Context) ([]domain.LevelThreshold, error) {
	var rows []models.Level
	query := `SELECT * FROM levels WHERE is_active = 1 ORDER BY level_number`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	levels := make([]domain.LevelThreshold, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, domain.LevelThreshold{
			Level:          row.LevelNumber,
			PointsRequired: row.PointsRequired,
			IsActive:       row.IsActive,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return levels, nil
}

// CountLevels returns the number of stored level rows.
func (r *sqlxLevelRepository) CountLevels(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM levels`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count levels: %w", err)
	}
	return count, nil
}

// SaveLevels inserts the given level rows.
func (r *sqlxLevelRepository) SaveLevels(ctx context.Context, levels []domain.LevelThreshold) error {
	query := `INSERT INTO levels (id, level_number, points_required, is_active, created_at, updated_at)
	          VALUES (:1, :2, :3, 1, :4, :5)`

	executor := GetExecutor(ctx, r.db)
	now := time.Now()
	for _, level := range levels {
		if _, err := executor.ExecContext(ctx, query,
			util.NewULID(), level.Level, level.PointsRequired, now, now); err != nil {
			return fmt.Errorf("failed to save level %d: %w", level.Level, err)
		}
	}
	return nil
}
