package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON document in a CLOB
// column. NULL and empty values scan to an empty slice.
type StringSlice []string

// Value implements the driver.Valuer interface.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// User represents a user row.
type User struct {
	ID                string         `db:"ID"` // ULID
	GoogleID          string         `db:"GOOGLE_ID"`
	Email             string         `db:"EMAIL"`
	Name              sql.NullString `db:"NAME"`
	ProfilePictureURL sql.NullString `db:"PROFILE_PICTURE_URL"`
	TotalPoints       int            `db:"TOTAL_POINTS"` // lifetime points, kept in sync with attempts and bonuses
	CreatedAt         time.Time      `db:"CREATED_AT"`
	UpdatedAt         time.Time      `db:"UPDATED_AT"`
	DeletedAt         sql.NullTime   `db:"DELETED_AT"`
}

// Topic represents a sports topic grouping quizzes.
type Topic struct {
	ID          string         `db:"ID"` // ULID
	Name        string         `db:"NAME"`
	Slug        string         `db:"SLUG"`
	Description sql.NullString `db:"DESCRIPTION"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
	DeletedAt   sql.NullTime   `db:"DELETED_AT"`
}

// Quiz represents a quiz row. CompletionBonus is the total bonus pool
// granted the first time a user finishes the quiz.
type Quiz struct {
	ID              string         `db:"ID"` // ULID
	TopicID         string         `db:"TOPIC_ID"`
	Title           string         `db:"TITLE"`
	Slug            string         `db:"SLUG"`
	Description     sql.NullString `db:"DESCRIPTION"`
	CompletionBonus int            `db:"COMPLETION_BONUS"`
	CreatedAt       time.Time      `db:"CREATED_AT"`
	UpdatedAt       time.Time      `db:"UPDATED_AT"`
	DeletedAt       sql.NullTime   `db:"DELETED_AT"`
}

// Question represents a multiple-choice question row. Options are kept
// as a JSON array in a CLOB column.
type Question struct {
	ID               string       `db:"ID"` // ULID
	QuizID           string       `db:"QUIZ_ID"`
	Text             string       `db:"TEXT"`
	Options          StringSlice  `db:"OPTIONS"`
	CorrectOption    int          `db:"CORRECT_OPTION"` // index into Options
	Difficulty       string       `db:"DIFFICULTY"`     // EASY | MEDIUM | HARD
	TimeLimitSeconds int          `db:"TIME_LIMIT_SECONDS"`
	CreatedAt        time.Time    `db:"CREATED_AT"`
	UpdatedAt        time.Time    `db:"UPDATED_AT"`
	DeletedAt        sql.NullTime `db:"DELETED_AT"`
}

// QuizAttempt represents a completed quiz attempt.
type QuizAttempt struct {
	ID             string       `db:"ID"` // ULID
	UserID         string       `db:"USER_ID"`
	QuizID         string       `db:"QUIZ_ID"`
	CorrectAnswers int          `db:"CORRECT_ANSWERS"`
	TotalQuestions int          `db:"TOTAL_QUESTIONS"`
	Score          float64      `db:"SCORE"` // fraction of correct answers, 0..1
	TotalPoints    int          `db:"TOTAL_POINTS"`
	StartedAt      time.Time    `db:"STARTED_AT"`
	CompletedAt    time.Time    `db:"COMPLETED_AT"`
	CreatedAt      time.Time    `db:"CREATED_AT"`
	UpdatedAt      time.Time    `db:"UPDATED_AT"`
	DeletedAt      sql.NullTime `db:"DELETED_AT"`
}

// CompletionBonusAward records that a user received a quiz's
// completion bonus. (QUIZ_ID, USER_ID) carries a unique constraint so
// the bonus can be granted at most once.
type CompletionBonusAward struct {
	ID          string    `db:"ID"` // ULID
	QuizID      string    `db:"QUIZ_ID"`
	UserID      string    `db:"USER_ID"`
	BonusPoints int       `db:"BONUS_POINTS"`
	AwardedAt   time.Time `db:"AWARDED_AT"`
	CreatedAt   time.Time `db:"CREATED_AT"`
}

// QuizLeaderboard stores a user's best result on a quiz plus the
// materialized rank among all users of that quiz.
type QuizLeaderboard struct {
	ID              string       `db:"ID"` // ULID
	QuizID          string       `db:"QUIZ_ID"`
	UserID          string       `db:"USER_ID"`
	BestScore       int          `db:"BEST_SCORE"`
	BestTimeSeconds float64      `db:"BEST_TIME_SECONDS"`
	RankPosition    sql.NullInt64 `db:"RANK_POSITION"` // recomputed after each submission
	CreatedAt       time.Time    `db:"CREATED_AT"`
	UpdatedAt       time.Time    `db:"UPDATED_AT"`
}

// Level represents one row of the leveling curve.
type Level struct {
	ID             string    `db:"ID"` // ULID
	LevelNumber    int       `db:"LEVEL_NUMBER"`
	PointsRequired int       `db:"POINTS_REQUIRED"`
	IsActive       bool      `db:"IS_ACTIVE"`
	CreatedAt      time.Time `db:"CREATED_AT"`
	UpdatedAt      time.Time `db:"UPDATED_AT"`
}

// LeaderboardRow is the scan target for leaderboard aggregation
// queries. It is not backed by a single table.
type LeaderboardRow struct {
	UserID           string         `db:"USER_ID"`
	UserName         sql.NullString `db:"USER_NAME"`
	UserImage        sql.NullString `db:"USER_IMAGE"`
	Score            int            `db:"SCORE"`
	Attempts         int            `db:"ATTEMPTS"`
	FirstCompletedAt time.Time      `db:"FIRST_COMPLETED_AT"`
}
