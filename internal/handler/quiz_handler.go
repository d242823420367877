package handler

import (
	"sports-trivia/internal/domain"
	"sports-trivia/internal/dto"
	"sports-trivia/internal/middleware"
	"sports-trivia/internal/service"

	"github.com/gofiber/fiber/v2"
)

type QuizHandler struct {
	quizService service.QuizService
}

func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetQuiz returns a quiz with its playable question set.
// @Summary Get Quiz
// @Description Returns a quiz and its questions. Correct answers are not exposed.
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if quizID == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	quiz, err := h.quizService.GetQuiz(c.Context(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitAttempt scores and records a finished quiz run.
// @Summary Submit Quiz Attempt
// @Description Scores the submitted answers, records the attempt, credits points and grants the completion bonus on first completion.
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitAttemptRequest true "Answers"
// @Success 200 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid submission"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "Quiz not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /quizzes/{id}/attempts [post]
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	quizID := c.Params("id")
	if quizID == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result, err := h.quizService.SubmitAttempt(c.Context(), userID, quizID, &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
