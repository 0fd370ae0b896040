package models

import (
	"time"

	"gorm.io/datatypes"
)

// Maintenance statuses
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

// Maintenance is a repair or upkeep record for a property
type Maintenance struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID  string         `gorm:"size:32;not null;index" json:"property_id"`
	Type        string         `gorm:"size:100" json:"type"`
	Date        datatypes.Date `json:"date"`
	Cost        float64        `json:"cost"`
	Status      string         `gorm:"size:20;not null" json:"status"`
	Provider    string         `gorm:"size:255" json:"provider"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName overrides the table name for Maintenance
func (Maintenance) TableName() string {
	return "maintenance"
}

// MaintenanceView is a maintenance record with its property name
type MaintenanceView struct {
	Maintenance
	PropertyName string `json:"property_name"`
}
