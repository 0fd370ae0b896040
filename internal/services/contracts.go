package services

import (
	"time"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var contractStatuses = []string{models.ContractActive, models.ContractExpired, models.ContractTerminated}

// ContractInput carries create and update fields; nil means "not provided".
// An empty end_date makes the contract open-ended.
type ContractInput struct {
	PropertyID   *string           `json:"property_id"`
	TenantID     *types.FlexUint64 `json:"tenant_id"`
	StartDate    *types.FlexDate   `json:"start_date"`
	EndDate      *types.FlexDate   `json:"end_date"`
	Terms        *string           `json:"terms"`
	Status       *string           `json:"status"`
	DocumentPath *string           `json:"document_path"`
}

func (in *ContractInput) validate() error {
	if in.Status != nil {
		if err := oneOf("status", str(in.Status), false, contractStatuses...); err != nil {
			return err
		}
	}
	if in.PropertyID != nil && str(in.PropertyID) == "" {
		return validationError("property_id must not be empty")
	}
	if in.TenantID != nil && *in.TenantID == 0 {
		return validationError("tenant_id must not be empty")
	}
	return nil
}

func contractViews(db *gorm.DB) *gorm.DB {
	return db.Table("contracts").
		Select("contracts.*, " +
			"COALESCE(properties.name, '') AS property_name, " +
			"COALESCE(tenants.name, '') AS tenant_name").
		Joins("LEFT JOIN properties ON properties.id = contracts.property_id").
		Joins("LEFT JOIN tenants ON tenants.id = contracts.tenant_id")
}

// ListContracts returns every contract in insertion order
func ListContracts(db *gorm.DB) ([]models.ContractView, error) {
	var contracts []models.ContractView
	err := contractViews(db).Order("contracts.id ASC").Find(&contracts).Error
	return contracts, err
}

// GetContract loads one enriched contract
func GetContract(db *gorm.DB, id uint) (*models.ContractView, error) {
	var contract models.ContractView
	if err := contractViews(db).Where("contracts.id = ?", id).Take(&contract).Error; err != nil {
		return nil, classify(err, "contract", id)
	}
	return &contract, nil
}

// CreateContract inserts a lease between an existing tenant and property
func CreateContract(db *gorm.DB, actor *Claims, in ContractInput) (*models.Contract, error) {
	if str(in.PropertyID) == "" || in.TenantID == nil {
		return nil, validationError("property_id and tenant_id are required")
	}
	if in.StartDate == nil || in.StartDate.IsZero() {
		return nil, validationError("start_date is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var end time.Time
	if in.EndDate != nil {
		end = in.EndDate.Time
	}
	if err := checkTerm(in.StartDate.Time, end); err != nil {
		return nil, err
	}

	contract := models.Contract{
		PropertyID:   propertyCode(str(in.PropertyID)),
		TenantID:     uint(*in.TenantID),
		StartDate:    datatypes.Date(in.StartDate.Time),
		EndDate:      dateOrNil(end),
		Terms:        str(in.Terms),
		Status:       orDefault(in.Status, models.ContractActive),
		DocumentPath: str(in.DocumentPath),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireReference(tx, &models.Property{}, "property", contract.PropertyID); err != nil {
			return err
		}
		if err := requireReference(tx, &models.Tenant{}, "tenant", contract.TenantID); err != nil {
			return err
		}
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}
		return recordOperation(tx, actor, "contract.create", map[string]interface{}{
			"id":          contract.ID,
			"property_id": contract.PropertyID,
			"tenant_id":   contract.TenantID,
		})
	})
	if err != nil {
		return nil, err
	}

	return &contract, nil
}

// UpdateContract applies the provided fields; the resulting term must still end after it starts
func UpdateContract(db *gorm.DB, actor *Claims, id uint, in ContractInput) (*MutationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		var current models.Contract
		if err := tx.First(&current, id).Error; err != nil {
			return classify(err, "contract", id)
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
			tid := uint(*in.TenantID)
			if err := requireReference(tx, &models.Tenant{}, "tenant", tid); err != nil {
				return err
			}
			updates["tenant_id"] = tid
		}

		start := time.Time(current.StartDate)
		var end time.Time
		if current.EndDate != nil {
			end = time.Time(*current.EndDate)
		}
		if in.StartDate != nil && !in.StartDate.IsZero() {
			start = in.StartDate.Time
			updates["start_date"] = datatypes.Date(start)
		}
		if in.EndDate != nil {
			end = in.EndDate.Time
			updates["end_date"] = dateOrNil(end)
		}
		if err := checkTerm(start, end); err != nil {
			return err
		}

		updates.setString("terms", in.Terms)
		updates.setString("status", in.Status)
		updates.setString("document_path", in.DocumentPath)

		n, err := applyUpdates(tx, &models.Contract{}, "contract", id, updates)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		return recordOperation(tx, actor, "contract.update", map[string]interface{}{
			"id":     id,
			"fields": updates.names(),
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteContract removes one contract
func DeleteContract(db *gorm.DB, actor *Claims, id uint) (*MutationResult, error) {
	result := &MutationResult{ID: id}
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := deleteRow(tx, &models.Contract{}, "contract", id)
		if err != nil {
			return err
		}
		result.AffectedRows = n

		return recordOperation(tx, actor, "contract.delete", map[string]interface{}{"id": id})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// dateOrNil maps the zero time to a NULL column
func dateOrNil(t time.Time) *datatypes.Date {
	if t.IsZero() {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

// checkTerm rejects an end date before the start date; an open-ended term is allowed
func checkTerm(start, end time.Time) error {
	if end.IsZero() || start.IsZero() {
		return nil
	}
	if end.Before(start) {
		return validationError("end_date %s is before start_date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return nil
}
