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

package services

import (
	"fmt"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/types"
	"gorm.io/gorm"
)

var paymentMethods = []string{models.MethodCash, models.MethodBank, models.MethodCheck, models.MethodMobile}

// PaymentInput carries create and update fields; nil means "not provided".
// A tenant_id of 0 or "" means no tenant.
type PaymentInput struct {
	PropertyID  *string            `json:"property_id"`
	TenantID    *types.FlexUint64  `json:"tenant_id"`
	Amount      *types.FlexFloat64 `json:"amount"`
	Date        *types.FlexDate    `json:"date"`
	Method      *string            `json:"method"`
	Status      *string            `json:"status"`
	ReceiptPath *string            `json:"receipt_path"`
}

func (in *PaymentInput) validate() error {
	if in.Amount != nil && in.Amount.Float64() <= 0 {
		return validationError("amount must be greater than zero")
	}
	if in.Status != nil {
		if err := oneOf("status", str(in.Status), false, paymentStatuses...); err != nil {
			return err
		}
	}
	if in.Method != nil {
		if err := oneOf("method", str(in.Method), true, paymentMethods...); err != nil {
			return err
		}
	}
	if in.PropertyID != nil && str(in.PropertyID) == "" {
		return validationError("property_id must not be empty")
	}
	return nil
}

// paymentViews selects payments with the names of the rows they reference.
// Outer joins keep payments whose tenant or operator is gone.
func paymentViews(db *gorm.DB) *gorm.DB {
	return db.Table("payments").
		Select("payments.*, " +
			"COALESCE(properties.name, '') AS property_name, " +
			"COALESCE(tenants.name, '') AS tenant_name, " +
			"COALESCE(users.username, '') AS operator_name").
		Joins("LEFT JOIN properties ON properties.id = payments.property_id").
		Joins("LEFT JOIN tenants ON tenants.id = payments.tenant_id").
		Joins("LEFT JOIN users ON users.id = payments.operator_id")
}

// ListPayments returns every payment in insertion order
func ListPayments(db *gorm.DB) ([]models.PaymentView, error) {
	var payments []models.PaymentView
	err := paymentViews(db).Order("payments.id ASC").Find(&payments).Error
	return payments, err
}

// GetPayment loads one enriched payment
func GetPayment(db *gorm.DB, id uint) (*models.PaymentView, error) {
	var payment models.PaymentView
	if err := paymentViews(db).Where("payments.id = ?", id).Take(&payment).Error; err != nil {
		return nil, classify(err, "payment", id)
	}
	return &payment, nil
}

// CreatePayment records a payment and, in the same transaction, overwrites the payment status
// of the property and of every tenant attached to it with the new payment's status.
// Either all three writes land or none do.
func CreatePayment(db *gorm.DB, actor *Claims, in PaymentInput) (*models.Payment, error) {
	if str(in.PropertyID) == "" {
		return nil, validationError("property_id is required")
	}
	if in.Amount == nil {
		return nil, validationError("amount is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	payment := models.Payment{
		PropertyID:  propertyCode(str(in.PropertyID)),
		TenantID:    in.TenantID.UintPtr(),
		Amount:      in.Amount.Float64(),
		Method:      str(in.Method),
		Status:      orDefault(in.Status, models.PaymentPaid),
		ReceiptPath: str(in.ReceiptPath),
	}
	if actor != nil {
		payment.OperatorID = actor.UserID
	}
	if in.Date != nil && !in.Date.IsZero() {
		payment.Date = in.Date.Time
	} else {
		payment.Date = db.NowFunc()
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireReference(tx, &models.Property{}, "property", payment.PropertyID); err != nil {
			return err
		}
		if payment.TenantID != nil {
			if err := requireReference(tx, &models.Tenant{}, "tenant", *payment.TenantID); err != nil {
				return err
			}
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := projectPaymentStatus(tx, payment.PropertyID, payment.Status); err != nil {
			return err
		}

		return recordOperation(tx, actor, "payment.create", map[string]interface{}{
			"id":          payment.ID,
			"property_id": payment.PropertyID,
			"amount":      payment.Amount,
			"status":      payment.Status,
		})
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// UpdatePayment applies the provided fields, then re-projects the payment status of the affected
// properties from their latest remaining payment
func UpdatePayment(db *gorm.DB, actor *Claims, id uint, in PaymentInput) (*MutationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		var current models.Payment
		if err := tx.First(&current, id).Error; err != nil {
			return classify(err, "payment", id)
		}

		updates := columns{}
		if in.PropertyID != nil {
			pid := propertyCode(str(in.PropertyID))
			if err := requireReference(tx, &models.Property{}, "property", pid); err != nil {
				return err
			}
			updates["property_id"] = pid
		}
		if in.TenantID != nil {
			tid := in.TenantID.UintPtr()
			if tid != nil {
				if err := requireReference(tx, &models.Tenant{}, "tenant", *tid); err != nil {
					return err
				}
			}
			updates["tenant_id"] = tid
		}
		updates.setFloat("amount", in.Amount)
		if in.Date != nil && !in.Date.IsZero() {
			updates["date"] = in.Date.Time
		}
		updates.setString("method", in.Method)
		updates.setString("status", in.Status)
		updates.setString("receipt_path", in.ReceiptPath)

		n, err := applyUpdates(tx, &models.Payment{}, "payment", id, updates)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		if err := reprojectPaymentStatus(tx, current.PropertyID); err != nil {
			return err
		}
		if pid, ok := updates["property_id"].(string); ok && pid != current.PropertyID {
			if err := reprojectPaymentStatus(tx, pid); err != nil {
				return err
			}
		}

		return recordOperation(tx, actor, "payment.update", map[string]interface{}{
			"id":     id,
			"fields": updates.names(),
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeletePayment removes a payment and re-projects its property's payment status
func DeletePayment(db *gorm.DB, actor *Claims, id uint) (*MutationResult, error) {
	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		var current models.Payment
		if err := tx.First(&current, id).Error; err != nil {
			return classify(err, "payment", id)
		}

		n, err := deleteRow(tx, &models.Payment{}, "payment", id)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		if err := reprojectPaymentStatus(tx, current.PropertyID); err != nil {
			return err
		}

		return recordOperation(tx, actor, "payment.delete", map[string]interface{}{
			"id":          id,
			"property_id": current.PropertyID,
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// projectPaymentStatus writes status onto the property and every tenant attached to it
func projectPaymentStatus(tx *gorm.DB, propertyID, status string) error {
	if err := tx.Model(&models.Property{}).
		Where("id = ?", propertyID).
		Update("payment_status", status).Error; err != nil {
		return fmt.Errorf("failed to update payment status of property %s: %w", propertyID, err)
	}

	if err := tx.Model(&models.Tenant{}).
		Where("property_id = ?", propertyID).
		Update("payment_status", status).Error; err != nil {
		return fmt.Errorf("failed to update payment status of tenants of %s: %w", propertyID, err)
	}

	return nil
}

// reprojectPaymentStatus projects the status of the most recently recorded payment left for the
// property. A property with no payments keeps its current status.
func reprojectPaymentStatus(tx *gorm.DB, propertyID string) error {
	var latest []models.Payment
	if err := tx.Where("property_id = ?", propertyID).Order("id DESC").Limit(1).Find(&latest).Error; err != nil {
		return err
	}
	if len(latest) == 0 {
		return nil
	}
	return projectPaymentStatus(tx, propertyID, latest[0].Status)
}
