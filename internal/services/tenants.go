package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/types"
	"gorm.io/gorm"
)

var tenantRatings = []string{models.RatingExcellent, models.RatingGood, models.RatingAverage, models.RatingBad}

// French labels used in rent reminders
var paymentStatusLabels = map[string]string{
	models.PaymentPaid:     "Payé",
	models.PaymentUnpaid:   "Impayé",
	models.PaymentOverdue:  "En retard",
	models.PaymentDoubtful: "Douteux",
}

// TenantInput carries create and update fields; nil means "not provided".
// An empty property_id detaches the tenant.
type TenantInput struct {
	Name          *string `json:"name"`
	Whatsapp      *string `json:"whatsapp"`
	PropertyID    *string `json:"property_id"`
	PaymentStatus *string `json:"payment_status"`
	IDCard        *string `json:"id_card"`
	Rating        *string `json:"rating"`
	Notes         *string `json:"notes"`
}

func (in *TenantInput) validate() error {
	if in.Name != nil && str(in.Name) == "" {
		return validationError("name must not be empty")
	}
	if in.PaymentStatus != nil {
		if err := oneOf("payment_status", str(in.PaymentStatus), true, paymentStatuses...); err != nil {
			return err
		}
	}
	if in.Rating != nil {
		if err := oneOf("rating", str(in.Rating), true, tenantRatings...); err != nil {
			return err
		}
	}
	return nil
}

// ListTenants returns every tenant in insertion order
func ListTenants(db *gorm.DB) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := db.Order("id ASC").Find(&tenants).Error
	return tenants, err
}

// GetTenant loads one tenant
func GetTenant(db *gorm.DB, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := db.First(&tenant, id).Error; err != nil {
		return nil, classify(err, "tenant", id)
	}
	return &tenant, nil
}

// CreateTenant inserts a tenant. When attached to a property with no explicit payment status,
// the tenant starts with the property's.
func CreateTenant(db *gorm.DB, actor *Claims, in TenantInput) (*models.Tenant, error) {
	if str(in.Name) == "" {
		return nil, validationError("name is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	tenant := models.Tenant{
		Name:          str(in.Name),
		Whatsapp:      str(in.Whatsapp),
		PaymentStatus: str(in.PaymentStatus),
		IDCard:        str(in.IDCard),
		Rating:        str(in.Rating),
		Notes:         str(in.Notes),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if pid := propertyCode(str(in.PropertyID)); pid != "" {
			var property models.Property
			if err := tx.Where("id = ?", pid).First(&property).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("property %s does not exist: %w", pid, ErrInvalidReference)
				}
				return err
			}
			tenant.PropertyID = &pid
			if tenant.PaymentStatus == "" {
				tenant.PaymentStatus = property.PaymentStatus
			}
		}

		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		return recordOperation(tx, actor, "tenant.create", map[string]interface{}{
			"id":          tenant.ID,
			"name":        tenant.Name,
			"property_id": tenant.PropertyID,
		})
	})
	if err != nil {
		return nil, err
	}

	return &tenant, nil
}

// UpdateTenant applies the provided fields
func UpdateTenant(db *gorm.DB, actor *Claims, id uint, in TenantInput) (*MutationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	updates := columns{}
	updates.setString("name", in.Name)
	updates.setString("whatsapp", in.Whatsapp)
	updates.setString("payment_status", in.PaymentStatus)
	updates.setString("id_card", in.IDCard)
	updates.setString("rating", in.Rating)
	updates.setString("notes", in.Notes)

	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.PropertyID != nil {
			if pid := propertyCode(str(in.PropertyID)); pid != "" {
				if err := requireReference(tx, &models.Property{}, "property", pid); err != nil {
					return err
				}
				updates["property_id"] = pid
			} else {
				updates["property_id"] = nil
			}
		}

		n, err := applyUpdates(tx, &models.Tenant{}, "tenant", id, updates)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		return recordOperation(tx, actor, "tenant.update", map[string]interface{}{
			"id":     id,
			"fields": updates.names(),
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteTenant removes a tenant with no payments or contracts
func DeleteTenant(db *gorm.DB, actor *Claims, id uint) (*MutationResult, error) {
	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireExisting(tx, &models.Tenant{}, "tenant", id); err != nil {
			return err
		}
		if err := refuseIfReferenced(tx, "tenant", []uint{id}, tenantDependents); err != nil {
			return err
		}

		n, err := deleteRow(tx, &models.Tenant{}, "tenant", id)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		return recordOperation(tx, actor, "tenant.delete", map[string]interface{}{"id": id})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// BulkDeleteTenants removes all of ids or none of them
func BulkDeleteTenants(db *gorm.DB, actor *Claims, ids []types.FlexUint64) (*MutationResult, error) {
	seen := map[uint]struct{}{}
	var want []uint
	for _, raw := range ids {
		if raw == 0 {
			continue
		}
		id := uint(raw)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			want = append(want, id)
		}
	}
	if len(want) == 0 {
		return nil, validationError("ids must not be empty")
	}

	result := &MutationResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		var found []uint
		if err := tx.Model(&models.Tenant{}).Where("id IN ?", want).Pluck("id", &found).Error; err != nil {
			return err
		}
		if missing := difference(want, found); len(missing) > 0 {
			return notFound("tenant", missing)
		}
		if err := refuseIfReferenced(tx, "tenant", want, tenantDependents); err != nil {
			return err
		}

		res := tx.Where("id IN ?", want).Delete(&models.Tenant{})
		if res.Error != nil {
			return res.Error
		}
		result.AffectedRows = res.RowsAffected

		return recordOperation(tx, actor, "tenant.bulk_delete", map[string]interface{}{"ids": want})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Reminder is a prepared WhatsApp rent reminder
type Reminder struct {
	TenantID uint   `json:"tenant_id"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	Link     string `json:"link"`
}

// ReminderLink builds a wa.me link carrying a rent reminder for the tenant
func ReminderLink(db *gorm.DB, id uint) (*Reminder, error) {
	tenant, err := GetTenant(db, id)
	if err != nil {
		return nil, err
	}

	phone := digitsOnly(tenant.Whatsapp)
	if phone == "" {
		return nil, validationError("tenant %d has no whatsapp number", id)
	}

	label := ""
	if tenant.PropertyID != nil {
		label = *tenant.PropertyID
		if name, err := propertyName(db, label); err == nil && name != "" {
			label = name
		}
	}

	status := paymentStatusLabels[tenant.PaymentStatus]
	if status == "" {
		status = tenant.PaymentStatus
	}

	message := fmt.Sprintf("Bonjour %s,\n\nCeci est un rappel concernant votre loyer pour le bien %s.\n"+
		"Statut actuel: %s.\n\nMerci de régulariser votre situation.\n\nCordialement,\nImmoRIM",
		tenant.Name, label, status)

	return &Reminder{
		TenantID: tenant.ID,
		Phone:    phone,
		Message:  message,
		Link:     "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20"),
	}, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
