package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/logging"
	"github.com/localnerve/rentdb/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Options{Writer: &buf, Level: "debug", Format: "json"})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusTeapot).SendString(err.Error())
		},
	})
	app.Use(middleware.RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestID(c))
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.ErrBadGateway
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(middleware.RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "abc-123", first["request_id"])
	assert.Equal(t, float64(200), first["status"])
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, float64(fiber.StatusTeapot), second["status"], "logged status is the one sent")
	assert.Equal(t, "WARN", second["level"])
}
