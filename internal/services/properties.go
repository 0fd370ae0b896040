package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/types"
	"gorm.io/gorm"
)

var propertyIDPattern = regexp.MustCompile(`^[A-Z]{3}-[0-9]{6}$`)

var (
	propertyStatuses = []string{models.PropertyRented, models.PropertyAvailable, models.PropertyMaintenance}
	paymentStatuses  = []string{models.PaymentPaid, models.PaymentUnpaid, models.PaymentOverdue, models.PaymentDoubtful}
	propertyTypes    = []string{"apartment", "villa", "shop", "office", "warehouse"}
)

// PropertyInput carries create and update fields; nil means "not provided"
type PropertyInput struct {
	ID            *string            `json:"id"`
	Name          *string            `json:"name"`
	Province      *string            `json:"province"`
	Region        *string            `json:"region"`
	Status        *string            `json:"status"`
	RentAmount    *types.FlexFloat64 `json:"rent_amount"`
	PaymentStatus *string            `json:"payment_status"`
	Type          *string            `json:"type"`
	Area          *types.FlexFloat64 `json:"area"`
	Rooms         *types.FlexUint64  `json:"rooms"`
	Description   *string            `json:"description"`
}

func (in *PropertyInput) validate() error {
	if in.Status != nil {
		if err := oneOf("status", str(in.Status), false, propertyStatuses...); err != nil {
			return err
		}
	}
	if in.PaymentStatus != nil {
		if err := oneOf("payment_status", str(in.PaymentStatus), false, paymentStatuses...); err != nil {
			return err
		}
	}
	if in.Type != nil {
		if err := oneOf("type", str(in.Type), true, propertyTypes...); err != nil {
			return err
		}
	}
	if in.Name != nil && str(in.Name) == "" {
		return validationError("name must not be empty")
	}
	if in.RentAmount != nil && in.RentAmount.Float64() < 0 {
		return validationError("rent_amount must not be negative")
	}
	if in.Area != nil && in.Area.Float64() < 0 {
		return validationError("area must not be negative")
	}
	return nil
}

// ListProperties returns every property in insertion order
func ListProperties(db *gorm.DB) ([]models.Property, error) {
	var properties []models.Property
	err := db.Order("created_at ASC, id ASC").Find(&properties).Error
	return properties, err
}

// GetProperty loads one property by its code
func GetProperty(db *gorm.DB, id string) (*models.Property, error) {
	id = propertyCode(id)
	var property models.Property
	if err := db.Where("id = ?", id).First(&property).Error; err != nil {
		return nil, classify(err, "property", id)
	}
	return &property, nil
}

// CreateProperty inserts a property under its client-assigned code
func CreateProperty(db *gorm.DB, actor *Claims, in PropertyInput) (*models.Property, error) {
	id := propertyCode(str(in.ID))
	if !propertyIDPattern.MatchString(id) {
		return nil, validationError("property id %q must look like PRP-123456", id)
	}
	if str(in.Name) == "" {
		return nil, validationError("name is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	property := models.Property{
		ID:            id,
		Name:          str(in.Name),
		Province:      str(in.Province),
		Region:        str(in.Region),
		Status:        orDefault(in.Status, models.PropertyAvailable),
		PaymentStatus: orDefault(in.PaymentStatus, models.PaymentUnpaid),
		Type:          str(in.Type),
		Description:   str(in.Description),
	}
	if in.RentAmount != nil {
		property.RentAmount = in.RentAmount.Float64()
	}
	if in.Area != nil {
		property.Area = in.Area.Float64()
	}
	if in.Rooms != nil {
		property.Rooms = int(in.Rooms.Uint64())
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		createdAt, err := nextCreatedAt(tx)
		if err != nil {
			return err
		}
		property.CreatedAt = createdAt

		if err := tx.Create(&property).Error; err != nil {
			return classify(err, "property", id)
		}
		return recordOperation(tx, actor, "property.create", map[string]interface{}{
			"id":   property.ID,
			"name": property.Name,
		})
	})
	if err != nil {
		return nil, err
	}

	return &property, nil
}

// UpdateProperty applies the provided fields. The code itself is immutable.
func UpdateProperty(db *gorm.DB, actor *Claims, id string, in PropertyInput) (*MutationResult, error) {
	id = propertyCode(id)
	if in.ID != nil && str(in.ID) != "" && !strings.EqualFold(str(in.ID), id) {
		return nil, validationError("property id cannot be changed")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	updates := columns{}
	updates.setString("name", in.Name)
	updates.setString("province", in.Province)
	updates.setString("region", in.Region)
	updates.setString("status", in.Status)
	updates.setFloat("rent_amount", in.RentAmount)
	updates.setString("payment_status", in.PaymentStatus)
	updates.setString("type", in.Type)
	updates.setFloat("area", in.Area)
	updates.setString("description", in.Description)
	if in.Rooms != nil {
		updates["rooms"] = int(in.Rooms.Uint64())
	}

	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := applyUpdates(tx, &models.Property{}, "property", id, updates)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		return recordOperation(tx, actor, "property.update", map[string]interface{}{
			"id":     id,
			"fields": updates.names(),
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteProperty removes a property that nothing references
func DeleteProperty(db *gorm.DB, actor *Claims, id string) (*MutationResult, error) {
	id = propertyCode(id)
	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireExisting(tx, &models.Property{}, "property", id); err != nil {
			return err
		}
		if err := refuseIfReferenced(tx, "property", []string{id}, propertyDependents); err != nil {
			return err
		}

		n, err := deleteRow(tx, &models.Property{}, "property", id)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		return recordOperation(tx, actor, "property.delete", map[string]interface{}{"id": id})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// BulkDeleteProperties removes all of ids or none of them
func BulkDeleteProperties(db *gorm.DB, actor *Claims, ids []string) (*MutationResult, error) {
	codes := make([]string, len(ids))
	for i, id := range ids {
		codes[i] = propertyCode(id)
	}
	ids = uniqueStrings(codes)
	if len(ids) == 0 {
		return nil, validationError("ids must not be empty")
	}

	result := &MutationResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		var found []string
		if err := tx.Model(&models.Property{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
			return err
		}
		if missing := difference(ids, found); len(missing) > 0 {
			return notFound("property", strings.Join(missing, ", "))
		}
		if err := refuseIfReferenced(tx, "property", ids, propertyDependents); err != nil {
			return err
		}

		res := tx.Where("id IN ?", ids).Delete(&models.Property{})
		if res.Error != nil {
			return res.Error
		}
		result.AffectedRows = res.RowsAffected

		return recordOperation(tx, actor, "property.bulk_delete", map[string]interface{}{"ids": ids})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// nextCreatedAt returns a creation time strictly after the newest property's, so listing by
// created_at keeps insertion order even when the clock does not advance between creates
func nextCreatedAt(tx *gorm.DB) (time.Time, error) {
	now := tx.NowFunc().Truncate(time.Microsecond)

	var latest []models.Property
	if err := tx.Select("created_at").Order("created_at DESC").Limit(1).Find(&latest).Error; err != nil {
		return time.Time{}, err
	}
	if len(latest) > 0 && !latest[0].CreatedAt.Before(now) {
		now = latest[0].CreatedAt.Truncate(time.Microsecond).Add(time.Microsecond)
	}
	return now, nil
}

// requireExisting fails with ErrNotFound when the addressed row is absent
func requireExisting(tx *gorm.DB, model interface{}, entity string, id interface{}) error {
	n, err := countWhere(tx, model, "id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// difference returns the members of want missing from have
func difference[T comparable](want, have []T) []T {
	present := make(map[T]struct{}, len(have))
	for _, h := range have {
		present[h] = struct{}{}
	}
	var missing []T
	for _, w := range want {
		if _, ok := present[w]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}

func propertyName(tx *gorm.DB, id string) (string, error) {
	var names []string
	if err := tx.Model(&models.Property{}).Where("id = ?", id).Pluck("name", &names).Error; err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("property %s does not exist: %w", id, ErrInvalidReference)
	}
	return names[0], nil
}
