package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends the standard error body
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "not_found")
}

// CreatedResponse sends 201 with the id of the new row
func CreatedResponse(c *fiber.Ctx, message string, id interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(CreatedResponseStruct{
		Message:   message,
		Ok:        true,
		ID:        id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// MutationSuccessResponse sends a success response for updates and deletes
func MutationSuccessResponse(c *fiber.Ctx, message string, affectedRows int64) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponseStruct{
		Message:      message,
		Ok:           true,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		AffectedRows: affectedRows,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	AffectedRows int64  `json:"affectedRows"`
}

// CreatedResponseStruct defines the schema for create responses
type CreatedResponseStruct struct {
	Message   string      `json:"message"`
	Ok        bool        `json:"ok"`
	ID        interface{} `json:"id"`
	Timestamp string      `json:"timestamp"`
}
