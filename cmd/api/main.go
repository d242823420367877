// @title Sports Trivia API
// @version 1.0
// @description Scoring, leveling and leaderboard API for the sports trivia backend.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sports-trivia/internal/adapter"
	"sports-trivia/internal/cache"
	"sports-trivia/internal/config"
	"sports-trivia/internal/database"
	"sports-trivia/internal/handler"
	"sports-trivia/internal/logger"
	"sports-trivia/internal/middleware"
	"sports-trivia/internal/repository"
	"sports-trivia/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

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

	// Database
	db, err := database.Connect(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Successfully connected to Redis")

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	topicRepository := repository.NewSQLXTopicRepository(db)
	quizRepository := repository.NewSQLXQuizRepository(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	awardRepository := repository.NewSQLXAwardRepository(db)
	leaderboardRepository := repository.NewSQLXLeaderboardRepository(db)
	levelRepository := repository.NewSQLXLevelRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	gamificationService := service.NewGamificationService(
		levelRepository, userRepository, attemptRepository, awardRepository,
		cfg.Gamification.MaxLevel)
	if err := gamificationService.SeedDefaultLevels(context.Background()); err != nil {
		appLogger.Warn("Failed to seed level curve", zap.Error(err))
	}

	bonusService := service.NewBonusService(
		quizRepository, awardRepository, userRepository, txManager)

	leaderboardService := service.NewLeaderboardService(
		leaderboardRepository, topicRepository, cacheAdapter,
		cfg.Gamification.LeaderboardCacheTTL,
		cfg.Gamification.LeaderboardDefaultLimit,
		cfg.Gamification.LeaderboardMaxLimit)

	quizService := service.NewQuizService(
		quizRepository, attemptRepository, userRepository, txManager,
		bonusService, leaderboardService, gamificationService)

	userService := service.NewUserService(userRepository, attemptRepository, gamificationService)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	quizHandler := handler.NewQuizHandler(quizService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, gamificationService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Get("/me/attempts", userHandler.GetMyAttempts)
	userGroup.Get("/me/quiz-ranks", leaderboardHandler.GetMyQuizRanks)

	// Quiz routes
	apiGroup.Get("/quizzes/:id", quizHandler.GetQuiz)
	apiGroup.Post("/quizzes/:id/attempts", middleware.Protected(authService), quizHandler.SubmitAttempt)

	// Leaderboard and level routes (public)
	apiGroup.Get("/leaderboards/global", leaderboardHandler.GetGlobalLeaderboard)
	apiGroup.Get("/leaderboards/topics/:id", leaderboardHandler.GetTopicLeaderboard)
	apiGroup.Get("/levels", leaderboardHandler.GetLevels)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
