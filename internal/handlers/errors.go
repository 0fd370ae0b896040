package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/types"
	"github.com/localnerve/rentdb/internal/utils"
)

// ErrorHandler renders every error returned by a handler or middleware as the standard error body
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorType := "unknown"

		var custom *types.CustomError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &custom):
			code = custom.Code
			message = custom.Message
			errorType = custom.Type
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
			errorType = "http"
		default:
			log.Error("unhandled error", "url", c.OriginalURL(), "error", err)
		}

		return utils.ErrorResponse(c, message, code, errorType)
	}
}

// NotFound is the terminal handler for unmatched routes
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponseStruct{
		Status:    fiber.StatusNotFound,
		Message:   "[404] Resource Not Found",
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      "not_found",
	})
}
