package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/contracts"
	"github.com/localnerve/rentdb/internal/services"
	"gorm.io/gorm"
)

// AuthHandler handles login and session routes
type AuthHandler struct {
	DB    *gorm.DB
	Creds *services.Credentials
	Log   *slog.Logger
}

// LoginRequest is the login body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange a username and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body LoginRequest
	if err := bindBody(c, contracts.Login, &body); err != nil {
		return err
	}

	result, err := services.Login(h.DB, h.Creds, body.Username, body.Password)
	if err != nil {
		return serviceError(c, h.Log, "auth.login", err)
	}

	return c.JSON(result)
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh token
// @Description Issue a new token for the caller with their current role
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	result, err := services.Refresh(h.DB, h.Creds, actor(c))
	if err != nil {
		return serviceError(c, h.Log, "auth.refresh", err)
	}

	return c.JSON(result)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := services.CurrentUser(h.DB, actor(c).UserID)
	if err != nil {
		return serviceError(c, h.Log, "auth.me", err)
	}

	return c.JSON(user)
}
