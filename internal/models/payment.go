package models

import "time"

// Payment methods
const (
	MethodCash   = "cash"
	MethodBank   = "bank"
	MethodCheck  = "check"
	MethodMobile = "mobile"
)

// Payment is a recorded rent payment
type Payment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID  string    `gorm:"size:32;not null;index" json:"property_id"`
	TenantID    *uint     `gorm:"index" json:"tenant_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	OperatorID  uint      `gorm:"not null;index" json:"operator_id"`
	Method      string    `gorm:"size:20" json:"method"`
	Status      string    `gorm:"size:20;not null" json:"status"`
	ReceiptPath string    `gorm:"size:512" json:"receipt_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// PaymentView is a payment enriched with the names of the rows it references
type PaymentView struct {
	Payment
	PropertyName string `json:"property_name"`
	TenantName   string `json:"tenant_name"`
	OperatorName string `json:"operator_name"`
}
