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

type sqlxLeaderboardRepository struct {
	db *sqlx.DB
}

// NewSQLXLeaderboardRepository creates a new instance of sqlxLeaderboardRepository.
func NewSQLXLeaderboardRepository(db *sqlx.DB) domain.LeaderboardRepository {
	return &sqlxLeaderboardRepository{db: db}
}

func toUserScore(row *models.LeaderboardRow) domain.UserScore {
	return domain.UserScore{
		UserID:           row.UserID,
		UserName:         row.UserName.String,
		UserImage:        row.UserImage.String,
		Score:            row.Score,
		Attempts:         row.Attempts,
		FirstCompletedAt: row.FirstCompletedAt,
	}
}

// AggregateGlobalScores sums attempt points per user across all
// quizzes. A nil since leaves the window unbounded. Ordering is score
// descending, then earliest first completion, then user id, so equal
// inputs always produce the same board.
func (r *sqlxLeaderboardRepository) AggregateGlobalScores(ctx context.Context, since *time.Time, limit int) ([]domain.UserScore, error) {
	var sb strings.Builder
	args := []interface{}{}

	sb.WriteString(`SELECT user_id, user_name, user_image, score, attempts, first_completed_at FROM (
	  SELECT a.user_id AS user_id,
	         MAX(u.name) AS user_name,
	         MAX(u.profile_picture_url) AS user_image,
	         SUM(a.total_points) AS score,
	         COUNT(*) AS attempts,
	         MIN(a.completed_at) AS first_completed_at
	  FROM quiz_attempts a
	  JOIN users u ON u.id = a.user_id AND u.deleted_at IS NULL
	  WHERE a.deleted_at IS NULL`)
	if since != nil {
		args = append(args, *since)
		fmt.Fprintf(&sb, " AND a.completed_at >= :%d", len(args))
	}
	sb.WriteString(`
	  GROUP BY a.user_id
	  ORDER BY score DESC, first_completed_at ASC, user_id ASC
	)`)
	args = append(args, limit)
	fmt.Fprintf(&sb, " WHERE ROWNUM <= :%d", len(args))

	var rows []models.LeaderboardRow
	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate global scores: %w", err)
	}

	scores := make([]domain.UserScore, 0, len(rows))
	for i := range rows {
		scores = append(scores, toUserScore(&rows[i]))
	}
	return scores, nil
}

// AggregateTopicScores is AggregateGlobalScores restricted to attempts
// on quizzes under one topic.
func (r *sqlxLeaderboardRepository) AggregateTopicScores(ctx context.Context, topicID string, since *time.Time, limit int) ([]domain.UserScore, error) {
	var sb strings.Builder
	args := []interface{}{topicID}

	sb.WriteString(`SELECT user_id, user_name, user_image, score, attempts, first_completed_at FROM (
	  SELECT a.user_id AS user_id,
	         MAX(u.name) AS user_name,
	         MAX(u.profile_picture_url) AS user_image,
	         SUM(a.total_points) AS score,
	         COUNT(*) AS attempts,
	         MIN(a.completed_at) AS first_completed_at
	  FROM quiz_attempts a
	  JOIN users u ON u.id = a.user_id AND u.deleted_at IS NULL
	  JOIN quizzes q ON q.id = a.quiz_id AND q.deleted_at IS NULL
	  WHERE a.deleted_at IS NULL AND q.topic_id = :1`)
	if since != nil {
		args = append(args, *since)
		fmt.Fprintf(&sb, " AND a.completed_at >= :%d", len(args))
	}
	sb.WriteString(`
	  GROUP BY a.user_id
	  ORDER BY score DESC, first_completed_at ASC, user_id ASC
	)`)
	args = append(args, limit)
	fmt.Fprintf(&sb, " WHERE ROWNUM <= :%d", len(args))

	var rows []models.LeaderboardRow
	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate topic scores: %w", err)
	}

	scores := make([]domain.UserScore, 0, len(rows))
	for i := range rows {
		scores = append(scores, toUserScore(&rows[i]))
	}
	return scores, nil
}

// GetUserQuizRanks returns the stored rank for each requested quiz the
// user appears on. Quizzes without a stored row are absent from the map.
func (r *sqlxLeaderboardRepository) GetUserQuizRanks(ctx context.Context, userID string, quizIDs []string) (map[string]int, error) {
	ranks := make(map[string]int, len(quizIDs))
	if len(quizIDs) == 0 {
		return ranks, nil
	}

	args := []interface{}{userID}
	placeholders := make([]string, 0, len(quizIDs))
	for _, id := range quizIDs {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf(":%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT quiz_id, rank_position FROM quiz_leaderboards
	  WHERE user_id = :1 AND rank_position IS NOT NULL AND quiz_id IN (%s)`,
		strings.Join(placeholders, ", "))

	var rows []struct {
		QuizID       string `db:"QUIZ_ID"`
		RankPosition int    `db:"RANK_POSITION"`
	}
	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get user quiz ranks: %w", err)
	}

	for _, row := range rows {
		ranks[row.QuizID] = row.RankPosition
	}
	return ranks, nil
}

// UpsertQuizRankRow records the user's result on a quiz, keeping the
// better of the stored and incoming (score, time) pairs. Higher score
// wins; on equal score the lower completion time wins.
func (r *sqlxLeaderboardRepository) UpsertQuizRankRow(ctx context.Context, quizID, userID string, bestScore int, bestTimeSeconds float64) error {
	query := `MERGE INTO quiz_leaderboards ql
	  USING (SELECT :quiz_id AS quiz_id, :user_id AS user_id FROM dual) src
	  ON (ql.quiz_id = src.quiz_id AND ql.user_id = src.user_id)
	  WHEN MATCHED THEN UPDATE SET
	    ql.best_time_seconds = CASE
	      WHEN :score > ql.best_score THEN :time_seconds
	      WHEN :score = ql.best_score AND :time_seconds < ql.best_time_seconds THEN :time_seconds
	      ELSE ql.best_time_seconds END,
	    ql.best_score = CASE WHEN :score > ql.best_score THEN :score ELSE ql.best_score END,
	    ql.updated_at = :now
	  WHEN NOT MATCHED THEN INSERT (id, quiz_id, user_id, best_score, best_time_seconds, created_at, updated_at)
	    VALUES (:new_id, :quiz_id, :user_id, :score, :time_seconds, :now, :now)`

	executor := GetExecutor(ctx, r.db)
	args := map[string]interface{}{
		"quiz_id":      quizID,
		"user_id":      userID,
		"score":        bestScore,
		"time_seconds": bestTimeSeconds,
		"now":          time.Now(),
		"new_id":       util.NewULID(),
	}
	if _, err := executor.NamedExecContext(ctx, query, args); err != nil {
		return fmt.Errorf("failed to upsert quiz rank row: %w", err)
	}
	return nil
}

// RefreshQuizRanks recomputes the stored rank column for one quiz from
// the current best scores. Ranks follow best score descending, then
// best time ascending, then user id; equal (score, time) pairs share a
// rank.
func (r *sqlxLeaderboardRepository) RefreshQuizRanks(ctx context.Context, quizID string) error {
	query := `MERGE INTO quiz_leaderboards ql
	  USING (
	    SELECT id,
	           RANK() OVER (ORDER BY best_score DESC, best_time_seconds ASC) AS new_rank
	    FROM quiz_leaderboards
	    WHERE quiz_id = :1
	  ) ranked
	  ON (ql.id = ranked.id)
	  WHEN MATCHED THEN UPDATE SET ql.rank_position = ranked.new_rank, ql.updated_at = :2`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, quizID, time.Now()); err != nil {
		return fmt.Errorf("failed to refresh quiz ranks: %w", err)
	}
	return nil
}
