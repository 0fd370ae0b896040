package middleware

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/types"
	"gorm.io/gorm"
)

const localClaims = "claims"

// Authenticate requires a valid bearer token and stores its claims for later handlers.
// A missing token is 401; a token that fails verification is 403.
// With a non-nil db the account is reloaded on every request: a deleted or disabled account is
// refused at once, and the stored role replaces the one signed into the token.
func Authenticate(creds *services.Credentials, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return types.NewError(fiber.StatusUnauthorized, "auth.token.missing", "Bearer token required")
		}

		claims, err := creds.VerifyToken(token)
		if err != nil {
			return types.NewError(fiber.StatusForbidden, "auth.token.invalid", "Invalid token: %v", err)
		}

		if db != nil {
			user, err := services.CurrentUser(db, claims.UserID)
			if err != nil {
				if errors.Is(err, services.ErrNotFound) {
					return types.NewError(fiber.StatusForbidden, "auth.token.invalid", "Account no longer exists")
				}
				return err
			}
			if !user.IsActive() {
				return types.NewError(fiber.StatusForbidden, "auth.disabled", "Account is disabled")
			}
			current := *claims
			current.Username = user.Username
			current.Role = user.Role
			claims = &current
		}

		c.Locals(localClaims, claims)
		return c.Next()
	}
}

// RequireRole allows only callers whose role is in roles
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil || !slices.Contains(roles, claims.Role) {
			return types.NewError(fiber.StatusForbidden, "auth.role",
				"Role %s required", strings.Join(roles, " or "))
		}
		return c.Next()
	}
}

// RequireSelfOrRole allows the user addressed by the route parameter, or any caller with one of roles
func RequireSelfOrRole(param string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return types.NewError(fiber.StatusForbidden, "auth.ownership", "Not allowed")
		}
		if slices.Contains(roles, claims.Role) {
			return c.Next()
		}

		id, err := strconv.ParseUint(c.Params(param), 10, 64)
		if err != nil || uint(id) != claims.UserID {
			return types.NewError(fiber.StatusForbidden, "auth.ownership", "Not allowed to access another user")
		}
		return c.Next()
	}
}

// Claims returns the verified claims of the caller, or nil on public routes
func Claims(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(localClaims).(*services.Claims)
	return claims
}
