// common.go
//
// A property rental data service: portfolio, tenants, payments and reports over REST
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of rentdb.
// rentdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// rentdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with rentdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/contracts"
	"github.com/localnerve/rentdb/internal/middleware"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/types"
)

// bindBody validates the raw body against the named schema, then decodes it into dst
func bindBody(c *fiber.Ctx, schema string, dst interface{}) error {
	if err := contracts.Validate(schema, c.Body()); err != nil {
		return types.NewError(fiber.StatusBadRequest, "validation.input", "%v", err)
	}
	if err := c.BodyParser(dst); err != nil {
		return types.NewError(fiber.StatusBadRequest, "validation.input", "Invalid input: %v", err)
	}
	return nil
}

// uintParam reads a positive integer route parameter
func uintParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, types.NewError(fiber.StatusBadRequest, "validation.input", "Invalid %s %q", name, c.Params(name))
	}
	return uint(id), nil
}

// serviceError maps a service failure onto a status code and error type.
// Unclassified failures are logged and reported as a generic 500.
func serviceError(c *fiber.Ctx, log *slog.Logger, op string, err error) error {
	var custom *types.CustomError
	if errors.As(err, &custom) {
		return custom
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return types.NewError(fiber.StatusNotFound, "not_found", "%v", err)
	case errors.Is(err, services.ErrDuplicateKey):
		return types.NewError(fiber.StatusBadRequest, "validation.duplicate", "%v", err)
	case errors.Is(err, services.ErrInvalidReference):
		return types.NewError(fiber.StatusBadRequest, "validation.reference", "%v", err)
	case errors.Is(err, services.ErrValidation):
		return types.NewError(fiber.StatusBadRequest, "validation.input", "%v", err)
	case errors.Is(err, services.ErrInUse):
		return types.NewError(fiber.StatusConflict, "conflict.in_use", "%v", err)
	case errors.Is(err, services.ErrForbidden):
		return types.NewError(fiber.StatusForbidden, "auth.ownership", "%v", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return types.NewError(fiber.StatusUnauthorized, "auth.credentials", "Invalid credentials")
	case errors.Is(err, services.ErrAccountDisabled):
		return types.NewError(fiber.StatusForbidden, "auth.disabled", "Account disabled")
	case errors.Is(err, services.ErrInvalidToken):
		return types.NewError(fiber.StatusForbidden, "auth.token.invalid", "%v", err)
	}

	middleware.Logger(c, log).Error("request failed", "op", op, "error", err)
	return types.NewError(fiber.StatusInternalServerError, op, "Internal server error")
}

// actor returns the caller's claims
func actor(c *fiber.Ctx) *services.Claims {
	return middleware.Claims(c)
}
