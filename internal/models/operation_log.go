package models

import "time"

// OperationLog is an append-only audit row written alongside every mutation
type OperationLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type       string    `gorm:"size:64;not null;index" json:"type"`
	OperatorID uint      `gorm:"not null;index" json:"operator_id"`
	Details    JSON      `json:"details"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for OperationLog
func (OperationLog) TableName() string {
	return "operation_logs"
}

// All returns every model managed by the schema, in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Property{},
		&Tenant{},
		&Payment{},
		&Maintenance{},
		&Contract{},
		&OperationLog{},
	}
}
