package domain

import (
	"context"
	"strings"
	"time"
)

// Difficulty is a question difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty converts a string to a Difficulty. Input is
// case-insensitive; unknown values default to MEDIUM.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EASY":
		return DifficultyEasy
	case "MEDIUM":
		return DifficultyMedium
	case "HARD":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Topic represents a sport or sub-sport quizzes are grouped under.
type Topic struct {
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the topic
func (t *Topic) Validate() error {
	if t.Name == "" {
		return NewInvalidInputError("name is required")
	}
	if t.Slug == "" {
		return NewInvalidInputError("slug is required")
	}
	return nil
}

// Question represents a single quiz question.
type Question struct {
	ID               string
	QuizID           string
	Text             string
	Options          []string
	CorrectOption    int
	Difficulty       Difficulty
	TimeLimitSeconds int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewInvalidInputError("at least two options are required")
	}
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return NewInvalidInputError("correct option is out of range")
	}
	if q.TimeLimitSeconds <= 0 {
		return NewInvalidInputError("time limit must be positive")
	}
	return nil
}

// Quiz represents a trivia quiz with its question set.
type Quiz struct {
	ID              string
	TopicID         string
	Title           string
	Slug            string
	Description     string
	CompletionBonus int
	Questions       []Question
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return NewInvalidInputError("title is required")
	}
	if q.TopicID == "" {
		return NewInvalidInputError("topic ID is required")
	}
	return nil
}

// DefaultCompletionBonus derives the bonus for quizzes that have none
// configured: a flat amount per question.
func (q *Quiz) DefaultCompletionBonus(perQuestion int) int {
	if q.CompletionBonus > 0 {
		return q.CompletionBonus
	}
	return perQuestion * len(q.Questions)
}

// QuizRepository defines the interface for quiz data persistence.
type QuizRepository interface {
	GetQuizByID(ctx context.Context, quizID string) (*Quiz, error)
	GetQuizzesByTopic(ctx context.Context, topicID string, limit int) ([]*Quiz, error)
	SaveQuiz(ctx context.Context, quiz *Quiz) error
}

// TopicRepository defines the interface for topic data persistence.
type TopicRepository interface {
	GetTopicByID(ctx context.Context, topicID string) (*Topic, error)
	ListTopics(ctx context.Context) ([]*Topic, error)
	SaveTopic(ctx context.Context, topic *Topic) error
}
