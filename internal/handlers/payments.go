// payments.go
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
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/contracts"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/utils"
	"gorm.io/gorm"
)

// PaymentHandler handles payment routes
type PaymentHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// ListPayments handles GET /api/payments
// @Summary List payments
// @Description Payments with property, tenant and operator names
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PaymentView
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := services.ListPayments(h.DB)
	if err != nil {
		return serviceError(c, h.Log, "payments.list", err)
	}
	return c.JSON(payments)
}

// GetPayment handles GET /api/payments/:id
// @Summary Get a payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} models.PaymentView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := services.GetPayment(h.DB, id)
	if err != nil {
		return serviceError(c, h.Log, "payments.get", err)
	}
	return c.JSON(payment)
}

// CreatePayment handles POST /api/payments
// @Summary Record a payment
// @Description Also sets the payment status of the property and its tenants, atomically
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PaymentInput true "Payment"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var body services.PaymentInput
	if err := bindBody(c, contracts.PaymentCreate, &body); err != nil {
		return err
	}

	payment, err := services.CreatePayment(h.DB, actor(c), body)
	if err != nil {
		return serviceError(c, h.Log, "payments.create", err)
	}
	return utils.CreatedResponse(c, "Payment recorded", payment.ID)
}

// UpdatePayment handles PUT /api/payments/:id
// @Summary Update a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body services.PaymentInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /payments/{id} [put]
func (h *PaymentHandler) UpdatePayment(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var body services.PaymentInput
	if err := bindBody(c, contracts.PaymentUpdate, &body); err != nil {
		return err
	}

	result, err := services.UpdatePayment(h.DB, actor(c), id, body)
	if err != nil {
		return serviceError(c, h.Log, "payments.update", err)
	}
	return utils.MutationSuccessResponse(c, "Payment updated", result.AffectedRows)
}

// DeletePayment handles DELETE /api/payments/:id
// @Summary Delete a payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	result, err := services.DeletePayment(h.DB, actor(c), id)
	if err != nil {
		return serviceError(c, h.Log, "payments.delete", err)
	}
	return utils.MutationSuccessResponse(c, "Payment deleted", result.AffectedRows)
}
