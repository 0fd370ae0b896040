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

// PropertyHandler handles property routes
type PropertyHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// ListProperties handles GET /api/properties
// @Summary List properties
// @Description All properties in insertion order
// @Tags Properties
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Property
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /properties [get]
func (h *PropertyHandler) ListProperties(c *fiber.Ctx) error {
	properties, err := services.ListProperties(h.DB)
	if err != nil {
		return serviceError(c, h.Log, "properties.list", err)
	}
	return c.JSON(properties)
}

// GetProperty handles GET /api/properties/:id
// @Summary Get a property
// @Tags Properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property code"
// @Success 200 {object} models.Property
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	property, err := services.GetProperty(h.DB, c.Params("id"))
	if err != nil {
		return serviceError(c, h.Log, "properties.get", err)
	}
	return c.JSON(property)
}

// CreateProperty handles POST /api/properties
// @Summary Create a property
// @Description The client assigns the property code
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PropertyInput true "Property"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	var body services.PropertyInput
	if err := bindBody(c, contracts.PropertyCreate, &body); err != nil {
		return err
	}

	property, err := services.CreateProperty(h.DB, actor(c), body)
	if err != nil {
		return serviceError(c, h.Log, "properties.create", err)
	}
	return utils.CreatedResponse(c, "Property created", property.ID)
}

// UpdateProperty handles PUT /api/properties/:id
// @Summary Update a property
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property code"
// @Param body body services.PropertyInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *fiber.Ctx) error {
	var body services.PropertyInput
	if err := bindBody(c, contracts.PropertyUpdate, &body); err != nil {
		return err
	}

	result, err := services.UpdateProperty(h.DB, actor(c), c.Params("id"), body)
	if err != nil {
		return serviceError(c, h.Log, "properties.update", err)
	}
	return utils.MutationSuccessResponse(c, "Property updated", result.AffectedRows)
}

// DeleteProperty handles DELETE /api/properties/:id
// @Summary Delete a property
// @Description Refused with 409 while tenants, payments, maintenance or contracts reference it
// @Tags Properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property code"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *fiber.Ctx) error {
	result, err := services.DeleteProperty(h.DB, actor(c), c.Params("id"))
	if err != nil {
		return serviceError(c, h.Log, "properties.delete", err)
	}
	return utils.MutationSuccessResponse(c, "Property deleted", result.AffectedRows)
}

// BulkDeleteProperties handles DELETE /api/properties
// @Summary Delete several properties
// @Description All or nothing
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "{ids: [...]}"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /properties [delete]
func (h *PropertyHandler) BulkDeleteProperties(c *fiber.Ctx) error {
	var body struct {
		IDs types.FlexList[string] `json:"ids"`
	}
	if err := bindBody(c, contracts.BulkDelete, &body); err != nil {
		return err
	}

	result, err := services.BulkDeleteProperties(h.DB, actor(c), body.IDs.Slice())
	if err != nil {
		return serviceError(c, h.Log, "properties.bulkDelete", err)
	}
	return utils.MutationSuccessResponse(c, "Properties deleted", result.AffectedRows)
}
