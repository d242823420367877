package handler

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/logger"
	"sports-trivia/internal/middleware"
	"sports-trivia/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func generateState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GoogleLogin redirects the client to Google's consent page.
// @Summary Google Login
// @Description Starts the Google OAuth flow. Sets a state cookie and redirects.
// @Tags auth
// @Success 302
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state, err := generateState()
	if err != nil {
		return domain.NewInternalError("failed to generate oauth state", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusFound)
}

// GoogleCallback completes the OAuth flow and issues tokens.
// @Summary Google OAuth Callback
// @Description Exchanges the authorization code, creates or updates the user and returns a token pair.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "OAuth state"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid state or code"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	expectedState := c.Cookies(oauthStateCookie)
	tokens, user, err := h.authService.HandleGoogleCallback(
		c.Context(), c.Query("code"), c.Query("state"), expectedState)
	if err != nil {
		logger.Get().Warn("Google OAuth callback failed", zap.Error(err))
		return domain.NewError(domain.CodeUnauthorized, "google authentication failed", err)
	}

	c.ClearCookie(oauthStateCookie)
	logger.Get().Info("User authenticated", zap.String("userID", user.ID))
	return c.JSON(tokens)
}

// Refresh exchanges a refresh token for a new token pair.
// @Summary Refresh Tokens
// @Description Issues a new access and refresh token from a valid refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return domain.NewInvalidInputError("refresh token is required")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), body.RefreshToken)
	if err != nil {
		return domain.NewError(domain.CodeUnauthorized, "invalid refresh token", err)
	}
	return c.JSON(tokens)
}

// Logout ends the user's session. JWTs are stateless, so the server
// only records the event; the client discards its tokens.
// @Summary Logout
// @Description Ends the session. The client is expected to discard its tokens.
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if userID, ok := c.Locals(middleware.UserIDKey).(string); ok && userID != "" {
		logger.Get().Info("User logged out", zap.String("userID", userID))
	}
	return c.JSON(fiber.Map{"message": "logged out, discard your tokens"})
}
