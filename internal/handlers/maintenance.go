package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/contracts"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/utils"
	"gorm.io/gorm"
)

// MaintenanceHandler handles maintenance routes
type MaintenanceHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// ListMaintenance handles GET /api/maintenance
// @Summary List maintenance records
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MaintenanceView
// @Router /maintenance [get]
func (h *MaintenanceHandler) ListMaintenance(c *fiber.Ctx) error {
	records, err := services.ListMaintenance(h.DB)
	if err != nil {
		return serviceError(c, h.Log, "maintenance.list", err)
	}
	return c.JSON(records)
}

// GetMaintenance handles GET /api/maintenance/:id
// @Summary Get a maintenance record
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Maintenance ID"
// @Success 200 {object} models.MaintenanceView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /maintenance/{id} [get]
func (h *MaintenanceHandler) GetMaintenance(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	record, err := services.GetMaintenance(h.DB, id)
	if err != nil {
		return serviceError(c, h.Log, "maintenance.get", err)
	}
	return c.JSON(record)
}

// CreateMaintenance handles POST /api/maintenance
// @Summary Create a maintenance record
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MaintenanceInput true "Maintenance record"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /maintenance [post]
func (h *MaintenanceHandler) CreateMaintenance(c *fiber.Ctx) error {
	var body services.MaintenanceInput
	if err := bindBody(c, contracts.MaintenanceCreate, &body); err != nil {
		return err
	}

	record, err := services.CreateMaintenance(h.DB, actor(c), body)
	if err != nil {
		return serviceError(c, h.Log, "maintenance.create", err)
	}
	return utils.CreatedResponse(c, "Maintenance record created", record.ID)
}

// UpdateMaintenance handles PUT /api/maintenance/:id
// @Summary Update a maintenance record
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Maintenance ID"
// @Param body body services.MaintenanceInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /maintenance/{id} [put]
func (h *MaintenanceHandler) UpdateMaintenance(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var body services.MaintenanceInput
	if err := bindBody(c, contracts.MaintenanceUpdate, &body); err != nil {
		return err
	}

	result, err := services.UpdateMaintenance(h.DB, actor(c), id, body)
	if err != nil {
		return serviceError(c, h.Log, "maintenance.update", err)
	}
	return utils.MutationSuccessResponse(c, "Maintenance record updated", result.AffectedRows)
}

// DeleteMaintenance handles DELETE /api/maintenance/:id
// @Summary Delete a maintenance record
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Maintenance ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /maintenance/{id} [delete]
func (h *MaintenanceHandler) DeleteMaintenance(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	result, err := services.DeleteMaintenance(h.DB, actor(c), id)
	if err != nil {
		return serviceError(c, h.Log, "maintenance.delete", err)
	}
	return utils.MutationSuccessResponse(c, "Maintenance record deleted", result.AffectedRows)
}
