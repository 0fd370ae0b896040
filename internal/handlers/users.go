package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/contracts"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles user management routes
type UserHandler struct {
	DB    *gorm.DB
	Creds *services.Credentials
	Log   *slog.Logger
}

// ListUsers handles GET /api/users
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB)
	if err != nil {
		return serviceError(c, h.Log, "users.list", err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	user, err := services.GetUser(h.DB, id)
	if err != nil {
		return serviceError(c, h.Log, "users.get", err)
	}
	return c.JSON(user)
}

// CreateUser handles POST /api/users
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UserInput true "User"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var body services.UserInput
	if err := bindBody(c, contracts.UserCreate, &body); err != nil {
		return err
	}

	user, err := services.CreateUser(h.DB, h.Creds, actor(c), body)
	if err != nil {
		return serviceError(c, h.Log, "users.create", err)
	}
	return utils.CreatedResponse(c, "User created", user.ID)
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update a user
// @Description Admins may edit anyone. Others may edit their own username, password and language.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UserInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var body services.UserInput
	if err := bindBody(c, contracts.UserUpdate, &body); err != nil {
		return err
	}

	result, err := services.UpdateUser(h.DB, h.Creds, actor(c), id, body)
	if err != nil {
		return serviceError(c, h.Log, "users.update", err)
	}
	return utils.MutationSuccessResponse(c, "User updated", result.AffectedRows)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	result, err := services.DeleteUser(h.DB, actor(c), id)
	if err != nil {
		return serviceError(c, h.Log, "users.delete", err)
	}
	return utils.MutationSuccessResponse(c, "User deleted", result.AffectedRows)
}
