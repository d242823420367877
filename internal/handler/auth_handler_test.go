package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"sports-trivia/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestLogout(t *testing.T) {
	app := fiber.New()
	h := NewAuthHandler(nil)
	app.Post("/api/auth/logout", func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, "user1")
		return c.Next()
	}, h.Logout)

	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/logout", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["message"], "logged out")
}

func TestLogoutWithoutIdentifiedUser(t *testing.T) {
	app := fiber.New()
	h := NewAuthHandler(nil)
	app.Post("/api/auth/logout", h.Logout)

	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/logout", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
