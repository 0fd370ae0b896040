package services

import (
	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var maintenanceStatuses = []string{
	models.MaintenancePending,
	models.MaintenanceInProgress,
	models.MaintenanceCompleted,
	models.MaintenanceCancelled,
}

// MaintenanceInput carries create and update fields; nil means "not provided"
type MaintenanceInput struct {
	PropertyID  *string            `json:"property_id"`
	Type        *string            `json:"type"`
	Date        *types.FlexDate    `json:"date"`
	Cost        *types.FlexFloat64 `json:"cost"`
	Status      *string            `json:"status"`
	Provider    *string            `json:"provider"`
	Description *string            `json:"description"`
}

func (in *MaintenanceInput) validate() error {
	if in.Cost != nil && in.Cost.Float64() < 0 {
		return validationError("cost must not be negative")
	}
	if in.Status != nil {
		if err := oneOf("status", str(in.Status), false, maintenanceStatuses...); err != nil {
			return err
		}
	}
	if in.PropertyID != nil && str(in.PropertyID) == "" {
		return validationError("property_id must not be empty")
	}
	return nil
}

func maintenanceViews(db *gorm.DB) *gorm.DB {
	return db.Table("maintenance").
		Select("maintenance.*, COALESCE(properties.name, '') AS property_name").
		Joins("LEFT JOIN properties ON properties.id = maintenance.property_id")
}

// ListMaintenance returns every maintenance record in insertion order
func ListMaintenance(db *gorm.DB) ([]models.MaintenanceView, error) {
	var records []models.MaintenanceView
	err := maintenanceViews(db).Order("maintenance.id ASC").Find(&records).Error
	return records, err
}

// GetMaintenance loads one enriched maintenance record
func GetMaintenance(db *gorm.DB, id uint) (*models.MaintenanceView, error) {
	var record models.MaintenanceView
	if err := maintenanceViews(db).Where("maintenance.id = ?", id).Take(&record).Error; err != nil {
		return nil, classify(err, "maintenance", id)
	}
	return &record, nil
}

// CreateMaintenance inserts a maintenance record for an existing property
func CreateMaintenance(db *gorm.DB, actor *Claims, in MaintenanceInput) (*models.Maintenance, error) {
	if str(in.PropertyID) == "" {
		return nil, validationError("property_id is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	record := models.Maintenance{
		PropertyID:  propertyCode(str(in.PropertyID)),
		Type:        str(in.Type),
		Status:      orDefault(in.Status, models.MaintenancePending),
		Provider:    str(in.Provider),
		Description: str(in.Description),
	}
	if in.Cost != nil {
		record.Cost = in.Cost.Float64()
	}
	if in.Date != nil && !in.Date.IsZero() {
		record.Date = datatypes.Date(in.Date.Time)
	} else {
		record.Date = datatypes.Date(db.NowFunc())
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireReference(tx, &models.Property{}, "property", record.PropertyID); err != nil {
			return err
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return recordOperation(tx, actor, "maintenance.create", map[string]interface{}{
			"id":          record.ID,
			"property_id": record.PropertyID,
			"cost":        record.Cost,
		})
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// UpdateMaintenance applies the provided fields
func UpdateMaintenance(db *gorm.DB, actor *Claims, id uint, in MaintenanceInput) (*MutationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	updates := columns{}
	updates.setString("type", in.Type)
	updates.setFloat("cost", in.Cost)
	updates.setString("status", in.Status)
	updates.setString("provider", in.Provider)
	updates.setString("description", in.Description)
	if in.Date != nil && !in.Date.IsZero() {
		updates["date"] = datatypes.Date(in.Date.Time)
	}

	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.PropertyID != nil {
			pid := propertyCode(str(in.PropertyID))
			if err := requireReference(tx, &models.Property{}, "property", pid); err != nil {
				return err
			}
			updates["property_id"] = pid
		}

		n, err := applyUpdates(tx, &models.Maintenance{}, "maintenance", id, updates)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		return recordOperation(tx, actor, "maintenance.update", map[string]interface{}{
			"id":     id,
			"fields": updates.names(),
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteMaintenance removes one maintenance record
func DeleteMaintenance(db *gorm.DB, actor *Claims, id uint) (*MutationResult, error) {
	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := deleteRow(tx, &models.Maintenance{}, "maintenance", id)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		return recordOperation(tx, actor, "maintenance.delete", map[string]interface{}{"id": id})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
