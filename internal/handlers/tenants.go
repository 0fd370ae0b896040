package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/contracts"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/types"
	"github.com/localnerve/rentdb/internal/utils"
	"gorm.io/gorm"
)

// TenantHandler handles tenant routes
type TenantHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// ListTenants handles GET /api/tenants
// @Summary List tenants
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Tenant
// @Router /tenants [get]
func (h *TenantHandler) ListTenants(c *fiber.Ctx) error {
	tenants, err := services.ListTenants(h.DB)
	if err != nil {
		return serviceError(c, h.Log, "tenants.list", err)
	}
	return c.JSON(tenants)
}

// GetTenant handles GET /api/tenants/:id
// @Summary Get a tenant
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} models.Tenant
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	tenant, err := services.GetTenant(h.DB, id)
	if err != nil {
		return serviceError(c, h.Log, "tenants.get", err)
	}
	return c.JSON(tenant)
}

// CreateTenant handles POST /api/tenants
// @Summary Create a tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.TenantInput true "Tenant"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /tenants [post]
func (h *TenantHandler) CreateTenant(c *fiber.Ctx) error {
	var body services.TenantInput
	if err := bindBody(c, contracts.TenantCreate, &body); err != nil {
		return err
	}

	tenant, err := services.CreateTenant(h.DB, actor(c), body)
	if err != nil {
		return serviceError(c, h.Log, "tenants.create", err)
	}
	return utils.CreatedResponse(c, "Tenant created", tenant.ID)
}

// UpdateTenant handles PUT /api/tenants/:id
// @Summary Update a tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Param body body services.TenantInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{id} [put]
func (h *TenantHandler) UpdateTenant(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var body services.TenantInput
	if err := bindBody(c, contracts.TenantUpdate, &body); err != nil {
		return err
	}

	result, err := services.UpdateTenant(h.DB, actor(c), id, body)
	if err != nil {
		return serviceError(c, h.Log, "tenants.update", err)
	}
	return utils.MutationSuccessResponse(c, "Tenant updated", result.AffectedRows)
}

// DeleteTenant handles DELETE /api/tenants/:id
// @Summary Delete a tenant
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	result, err := services.DeleteTenant(h.DB, actor(c), id)
	if err != nil {
		return serviceError(c, h.Log, "tenants.delete", err)
	}
	return utils.MutationSuccessResponse(c, "Tenant deleted", result.AffectedRows)
}

// BulkDeleteTenants handles DELETE /api/tenants
// @Summary Delete several tenants
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "{ids: [...]}"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /tenants [delete]
func (h *TenantHandler) BulkDeleteTenants(c *fiber.Ctx) error {
	var body struct {
		IDs types.FlexList[types.FlexUint64] `json:"ids"`
	}
	if err := bindBody(c, contracts.BulkDelete, &body); err != nil {
		return err
	}

	result, err := services.BulkDeleteTenants(h.DB, actor(c), body.IDs.Slice())
	if err != nil {
		return serviceError(c, h.Log, "tenants.bulkDelete", err)
	}
	return utils.MutationSuccessResponse(c, "Tenants deleted", result.AffectedRows)
}

// Reminder handles GET /api/tenants/:id/reminder
// @Summary WhatsApp rent reminder
// @Description A wa.me link carrying a rent reminder for the tenant
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} services.Reminder
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{id}/reminder [get]
func (h *TenantHandler) Reminder(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	reminder, err := services.ReminderLink(h.DB, id)
	if err != nil {
		return serviceError(c, h.Log, "tenants.reminder", err)
	}
	return c.JSON(reminder)
}
