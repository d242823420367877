package handler

import (
	"strconv"

	"sports-trivia/internal/logger"
	"sports-trivia/internal/middleware"
	"sports-trivia/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// requireUserID pulls the authenticated user id out of the request
// context, or writes a 401 and returns false.
func requireUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		logger.Get().Warn("User ID not found in context", zap.String("path", c.Path()))
		return "", false
	}
	return userID, true
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Retrieves the profile, total points and level progress of the logged-in user.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// GetMyAttempts returns the authenticated user's attempt history.
// @Summary Get My Attempts
// @Description Returns a page of the logged-in user's quiz attempts, newest first.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param page query int false "Page number (1-based)" default(1)
// @Success 200 {object} dto.AttemptHistoryResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/attempts [get]
func (h *UserHandler) GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	limit, page := parsePagination(c)
	history, err := h.userService.GetAttemptHistory(c.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		return err
	}
	return c.JSON(history)
}

func parsePagination(c *fiber.Ctx) (limit, page int) {
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return limit, page
}
