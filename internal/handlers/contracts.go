package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/contracts"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/utils"
	"gorm.io/gorm"
)

// ContractHandler handles contract routes
type ContractHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// ListContracts handles GET /api/contracts
// @Summary List contracts
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ContractView
// @Router /contracts [get]
func (h *ContractHandler) ListContracts(c *fiber.Ctx) error {
	leases, err := services.ListContracts(h.DB)
	if err != nil {
		return serviceError(c, h.Log, "contracts.list", err)
	}
	return c.JSON(leases)
}

// GetContract handles GET /api/contracts/:id
// @Summary Get a contract
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contract ID"
// @Success 200 {object} models.ContractView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contracts/{id} [get]
func (h *ContractHandler) GetContract(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	contract, err := services.GetContract(h.DB, id)
	if err != nil {
		return serviceError(c, h.Log, "contracts.get", err)
	}
	return c.JSON(contract)
}

// CreateContract handles POST /api/contracts
// @Summary Create a contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ContractInput true "Contract"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /contracts [post]
func (h *ContractHandler) CreateContract(c *fiber.Ctx) error {
	var body services.ContractInput
	if err := bindBody(c, contracts.ContractCreate, &body); err != nil {
		return err
	}

	contract, err := services.CreateContract(h.DB, actor(c), body)
	if err != nil {
		return serviceError(c, h.Log, "contracts.create", err)
	}
	return utils.CreatedResponse(c, "Contract created", contract.ID)
}

// UpdateContract handles PUT /api/contracts/:id
// @Summary Update a contract
// @Description The end date may not fall before the start date
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contract ID"
// @Param body body services.ContractInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contracts/{id} [put]
func (h *ContractHandler) UpdateContract(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var body services.ContractInput
	if err := bindBody(c, contracts.ContractUpdate, &body); err != nil {
		return err
	}

	result, err := services.UpdateContract(h.DB, actor(c), id, body)
	if err != nil {
		return serviceError(c, h.Log, "contracts.update", err)
	}
	return utils.MutationSuccessResponse(c, "Contract updated", result.AffectedRows)
}

// DeleteContract handles DELETE /api/contracts/:id
// @Summary Delete a contract
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contract ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contracts/{id} [delete]
func (h *ContractHandler) DeleteContract(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	result, err := services.DeleteContract(h.DB, actor(c), id)
	if err != nil {
		return serviceError(c, h.Log, "contracts.delete", err)
	}
	return utils.MutationSuccessResponse(c, "Contract deleted", result.AffectedRows)
}
