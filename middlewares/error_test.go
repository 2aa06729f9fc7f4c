package middlewares

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp(h fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", h)
	return app
}

func getBoom(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return res.StatusCode, body
}

func TestErrorHandlerFiberError(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	status, body := getBoom(t, app)
	assert.Equal(t, fiber.StatusTeapot, status)
	assert.Equal(t, "short and stout", body["error"])
}

func TestErrorHandlerValidationErrors(t *testing.T) {
	type probe struct {
		Email string `validate:"required,email"`
	}
	app := errorApp(func(c *fiber.Ctx) error {
		return validator.New().Struct(probe{})
	})
	status, body := getBoom(t, app)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "validation failed", body["error"])
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "required", fields["Email"])
}

func TestErrorHandlerUnknownErrorIsGeneric(t *testing.T) {
	app := errorApp(func(c *fiber.Ctx) error {
		return errors.New("secret database password is hunter2")
	})
	status, body := getBoom(t, app)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "An unexpected error occurred. Please try again.", body["error"])
	assert.NotContains(t, body["error"], "hunter2")
}
