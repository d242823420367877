package handler

import (
	"strconv"
	"strings"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/middleware"
	"sports-trivia/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
	gamificationSvc    service.GamificationService
}

func NewLeaderboardHandler(leaderboardService service.LeaderboardService, gamificationSvc service.GamificationService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		gamificationSvc:    gamificationSvc,
	}
}

// GetGlobalLeaderboard returns the global leaderboard.
// @Summary Global Leaderboard
// @Description Ranks users by points earned across all quizzes within the given period.
// @Tags leaderboards
// @Produce json
// @Param period query string false "daily | weekly | monthly | all-time" default(all-time)
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid period"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /leaderboards/global [get]
func (h *LeaderboardHandler) GetGlobalLeaderboard(c *fiber.Ctx) error {
	period, err := domain.ParsePeriod(c.Query("period"))
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	board, err := h.leaderboardService.GetGlobalLeaderboard(c.Context(), period, limit)
	if err != nil {
		return err
	}
	return c.JSON(board)
}

// GetTopicLeaderboard returns a topic-scoped leaderboard.
// @Summary Topic Leaderboard
// @Description Ranks users by points earned on one topic's quizzes within the given period.
// @Tags leaderboards
// @Produce json
// @Param id path string true "Topic ID"
// @Param period query string false "daily | weekly | monthly | all-time" default(all-time)
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid period"
// @Failure 404 {object} middleware.ErrorResponse "Topic not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /leaderboards/topics/{id} [get]
func (h *LeaderboardHandler) GetTopicLeaderboard(c *fiber.Ctx) error {
	topicID := c.Params("id")
	if topicID == "" {
		return domain.NewInvalidInputError("topic id is required")
	}

	period, err := domain.ParsePeriod(c.Query("period"))
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	board, err := h.leaderboardService.GetTopicLeaderboard(c.Context(), topicID, period, limit)
	if err != nil {
		return err
	}
	return c.JSON(board)
}

// GetMyQuizRanks returns the authenticated user's stored rank per quiz.
// @Summary My Quiz Ranks
// @Description Returns the logged-in user's stored leaderboard rank for each requested quiz.
// @Tags leaderboards
// @Security ApiKeyAuth
// @Produce json
// @Param quiz_ids query string true "Comma-separated quiz IDs"
// @Success 200 {object} dto.UserQuizRanksResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/quiz-ranks [get]
func (h *LeaderboardHandler) GetMyQuizRanks(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var quizIDs []string
	for _, id := range strings.Split(c.Query("quiz_ids"), ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			quizIDs = append(quizIDs, trimmed)
		}
	}

	ranks, err := h.leaderboardService.GetUserQuizRanks(c.Context(), userID, quizIDs)
	if err != nil {
		return err
	}
	return c.JSON(ranks)
}

// GetLevels publishes the level curve.
// @Summary Level Curve
// @Description Returns the points threshold for every level.
// @Tags levels
// @Produce json
// @Success 200 {array} dto.LevelThresholdResponse
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /levels [get]
func (h *LeaderboardHandler) GetLevels(c *fiber.Ctx) error {
	levels, err := h.gamificationSvc.ListLevels(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(levels)
}
