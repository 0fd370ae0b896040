package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries a caller-supplied or generated request id
const RequestIDHeader = "X-Request-Id"

const (
	localRequestID = "requestID"
	localLogger    = "logger"
)

// RequestLogger tags each request with an id and logs its outcome.
// Errors are rendered here so the logged status is the one sent.
func RequestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		reqLog := log.With("request_id", requestID)
		c.Locals(localRequestID, requestID)
		c.Locals(localLogger, reqLog)

		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.IP(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			reqLog.Error("request failed", attrs...)
		case status >= fiber.StatusBadRequest:
			reqLog.Warn("request rejected", attrs...)
		default:
			reqLog.Info("request", attrs...)
		}

		return nil
	}
}

// Logger returns the request-scoped logger, or fallback outside a request
func Logger(c *fiber.Ctx, fallback *slog.Logger) *slog.Logger {
	if l, ok := c.Locals(localLogger).(*slog.Logger); ok {
		return l
	}
	return fallback
}

// RequestID returns the id assigned to the request
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(localRequestID).(string)
	return id
}
