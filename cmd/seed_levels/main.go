package main

import (
	"context"
	"log"

	"sports-trivia/internal/config"
	"sports-trivia/internal/database"
	"sports-trivia/internal/logger"
	"sports-trivia/internal/repository"
	"sports-trivia/internal/service"

	"go.uber.org/zap"
)

// Seeds the level curve table and optionally rebuilds user point
// totals from attempts and bonus awards.
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

	userRepo := repository.NewSQLXUserRepository(db)
	attemptRepo := repository.NewSQLXAttemptRepository(db)
	awardRepo := repository.NewSQLXAwardRepository(db)
	levelRepo := repository.NewSQLXLevelRepository(db)

	svc := service.NewGamificationService(levelRepo, userRepo, attemptRepo, awardRepo, cfg.Gamification.MaxLevel)

	ctx := context.Background()
	if err := svc.SeedDefaultLevels(ctx); err != nil {
		appLogger.Fatal("Failed to seed levels", zap.Error(err))
	}
	if err := svc.RecomputeTotals(ctx); err != nil {
		appLogger.Fatal("Failed to recompute user totals", zap.Error(err))
	}
	appLogger.Info("Seed complete")
}
