package domain

import (
	"context"
	"time"
)

// User represents a domain user object
type User struct {
	ID                string
	GoogleID          string
	Email             string
	Name              string
	ProfilePictureURL string
	TotalPoints       int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// NewUser creates a new User instance
func NewUser(googleID, email string) *User {
	now := time.Now()
	return &User{
		GoogleID:  googleID,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.GoogleID == "" {
		return NewInvalidInputError("google_id is required")
	}
	if u.Email == "" {
		return NewInvalidInputError("email is required")
	}
	return nil
}

// AnswerResult is the scored outcome of one answered question.
type AnswerResult struct {
	QuestionID       string
	SelectedOption   int
	IsCorrect        bool
	TimeSpentSeconds float64
	Points           int
}

// QuizAttempt represents one completed run through a quiz.
type QuizAttempt struct {
	ID             string
	UserID         string
	QuizID         string
	CorrectAnswers int
	TotalQuestions int
	Score          float64 // 0.0 ~ 1.0 fraction of correct answers
	TotalPoints    int     // per-question points plus any completion bonus
	StartedAt      time.Time
	CompletedAt    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	// IncrementTotalPoints adds delta to the user's total-points balance.
	// It participates in an ambient transaction when one is present on ctx.
	IncrementTotalPoints(ctx context.Context, userID string, delta int) error
	// SetTotalPoints overwrites the user's total-points balance. Used by
	// batch recomputation only.
	SetTotalPoints(ctx context.Context, userID string, points int) error
	// ListUserIDs returns the ids of all non-deleted users.
	ListUserIDs(ctx context.Context) ([]string, error)
}

// QuizAttemptRepository defines the interface for quiz attempt persistence.
type QuizAttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	GetAttemptsByUserID(ctx context.Context, userID string, limit, offset int) ([]QuizAttempt, int, error)
	// SumPointsByUser returns the sum of attempt points for one user.
	SumPointsByUser(ctx context.Context, userID string) (int, error)
}

// TransactionManager runs a function within a storage transaction. The
// function receives a context carrying the transaction; repository calls
// made with that context join it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
