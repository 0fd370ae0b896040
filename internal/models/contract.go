package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contract statuses
const (
	ContractActive     = "active"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"
)

// Contract is a lease between a tenant and a property
type Contract struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID   string          `gorm:"size:32;not null;index" json:"property_id"`
	TenantID     uint            `gorm:"not null;index" json:"tenant_id"`
	StartDate    datatypes.Date  `json:"start_date"`
	EndDate      *datatypes.Date `json:"end_date"` // nil while open-ended
	Terms        string          `gorm:"type:text" json:"terms"`
	Status       string          `gorm:"size:20;not null" json:"status"`
	DocumentPath string          `gorm:"size:512" json:"document_path"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName overrides the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// ContractView is a contract with its property and tenant names
type ContractView struct {
	Contract
	PropertyName string `json:"property_name"`
	TenantName   string `json:"tenant_name"`
}
