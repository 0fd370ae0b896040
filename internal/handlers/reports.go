package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/services"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles the aggregate routes
type ReportHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
	// Now defaults to time.Now; tests pin it to fix the revenue window
	Now func() time.Time
}

func (h *ReportHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Stats handles GET /api/stats
// @Summary Headline numbers
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Stats
// @Router /stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.StatsReport(h.DB)
	if err != nil {
		return serviceError(c, h.Log, "reports.stats", err)
	}
	return c.JSON(stats)
}

// Summary handles GET /api/reports/summary
// @Summary Dashboard summary
// @Description Revenue for the last twelve months, debt by province, occupancy and payment status counts
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Summary
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	summary, err := services.SummaryReport(h.DB, h.now())
	if err != nil {
		return serviceError(c, h.Log, "reports.summary", err)
	}
	return c.JSON(summary)
}

// ExportSummary handles GET /api/reports/summary/export
// @Summary Dashboard summary as a spreadsheet
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /reports/summary/export [get]
func (h *ReportHandler) ExportSummary(c *fiber.Ctx) error {
	now := h.now()

	summary, err := services.SummaryReport(h.DB, now)
	if err != nil {
		return serviceError(c, h.Log, "reports.export", err)
	}
	stats, err := services.StatsReport(h.DB)
	if err != nil {
		return serviceError(c, h.Log, "reports.export", err)
	}

	workbook, err := services.ExportSummary(summary, stats, now)
	if err != nil {
		return serviceError(c, h.Log, "reports.export", err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="rentdb-summary-%s.xlsx"`, now.UTC().Format("20060102")))
	return c.Send(workbook)
}
