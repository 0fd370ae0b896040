package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/services"
	"gorm.io/gorm"
)

// LogHandler exposes the operation log
type LogHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// ListOperations handles GET /api/logs
// @Summary Operation log
// @Description Most recent mutations, newest first
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows (default 100, max 1000)"
// @Success 200 {array} models.OperationLog
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /logs [get]
func (h *LogHandler) ListOperations(c *fiber.Ctx) error {
	logs, err := services.ListOperations(h.DB, c.QueryInt("limit", 0))
	if err != nil {
		return serviceError(c, h.Log, "logs.list", err)
	}
	return c.JSON(logs)
}
