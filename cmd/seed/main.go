package main

import (
	"context"
	"log"

	"sports-trivia/internal/config"
	"sports-trivia/internal/database"
	"sports-trivia/internal/domain"
	"sports-trivia/internal/logger"
	"sports-trivia/internal/repository"

	"go.uber.org/zap"
)

// Seeds a small set of demo topics and quizzes. Quizzes without an
// explicit completion bonus get the per-question default.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.Connect(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	topicRepo := repository.NewSQLXTopicRepository(db)
	quizRepo := repository.NewSQLXQuizRepository(db)
	ctx := context.Background()

	for _, seed := range demoTopics() {
		topic := seed.topic
		if err := topic.Validate(); err != nil {
			appLogger.Fatal("Invalid seed topic", zap.String("slug", topic.Slug), zap.Error(err))
		}
		if err := topicRepo.SaveTopic(ctx, &topic); err != nil {
			appLogger.Fatal("Failed to seed topic", zap.String("slug", topic.Slug), zap.Error(err))
		}

		for _, quiz := range seed.quizzes {
			quiz.TopicID = topic.ID
			quiz.CompletionBonus = quiz.DefaultCompletionBonus(cfg.Gamification.DefaultBonusPerQuestion)
			if err := quiz.Validate(); err != nil {
				appLogger.Fatal("Invalid seed quiz", zap.String("slug", quiz.Slug), zap.Error(err))
			}
			if err := quizRepo.SaveQuiz(ctx, &quiz); err != nil {
				appLogger.Fatal("Failed to seed quiz", zap.String("slug", quiz.Slug), zap.Error(err))
			}
			appLogger.Info("Seeded quiz",
				zap.String("slug", quiz.Slug),
				zap.Int("questions", len(quiz.Questions)),
				zap.Int("bonus", quiz.CompletionBonus))
		}
	}
	appLogger.Info("Seed complete")
}

type topicSeed struct {
	topic   domain.Topic
	quizzes []domain.Quiz
}

func demoTopics() []topicSeed {
	return []topicSeed{
		{
			topic: domain.Topic{
				Name:        "Football",
				Slug:        "football",
				Description: "Club and international football trivia",
			},
			quizzes: []domain.Quiz{
				{
					Title: "World Cup Classics",
					Slug:  "world-cup-classics",
					Questions: []domain.Question{
						{
							Text:             "Which country won the first FIFA World Cup in 1930?",
							Options:          []string{"Brazil", "Uruguay", "Italy", "Argentina"},
							CorrectOption:    1,
							Difficulty:       domain.DifficultyMedium,
							TimeLimitSeconds: 30,
						},
						{
							Text:             "How many players are on the pitch per team?",
							Options:          []string{"10", "11", "12"},
							CorrectOption:    1,
							Difficulty:       domain.DifficultyEasy,
							TimeLimitSeconds: 15,
						},
						{
							Text:             "Who scored the 'Hand of God' goal?",
							Options:          []string{"Pelé", "Zidane", "Maradona", "Ronaldo"},
							CorrectOption:    2,
							Difficulty:       domain.DifficultyHard,
							TimeLimitSeconds: 45,
						},
					},
				},
			},
		},
		{
			topic: domain.Topic{
				Name:        "Basketball",
				Slug:        "basketball",
				Description: "NBA and international basketball trivia",
			},
			quizzes: []domain.Quiz{
				{
					Title:           "NBA Records",
					Slug:            "nba-records",
					CompletionBonus: 500,
					Questions: []domain.Question{
						{
							Text:             "Who holds the record for most points in a single NBA game?",
							Options:          []string{"Kobe Bryant", "Wilt Chamberlain", "Michael Jordan"},
							CorrectOption:    1,
							Difficulty:       domain.DifficultyMedium,
							TimeLimitSeconds: 30,
						},
						{
							Text:             "How many points is a shot from beyond the arc worth?",
							Options:          []string{"2", "3", "4"},
							CorrectOption:    1,
							Difficulty:       domain.DifficultyEasy,
							TimeLimitSeconds: 10,
						},
					},
				},
			},
		},
	}
}
