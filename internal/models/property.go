package models

import "time"

// Property statuses
const (
	PropertyRented      = "rented"
	PropertyAvailable   = "available"
	PropertyMaintenance = "maintenance"
)

// Payment statuses, shared by properties, tenants and payments
const (
	PaymentPaid     = "paid"
	PaymentUnpaid   = "unpaid"
	PaymentOverdue  = "overdue"
	PaymentDoubtful = "doubtful"
)

// Property is a rentable unit identified by a client-assigned code such as PRP-123456.
// PaymentStatus is a projection of the most recently recorded payment for the property.
type Property struct {
	ID            string    `gorm:"primaryKey;size:32" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Province      string    `gorm:"size:100;index" json:"province"`
	Region        string    `gorm:"size:100" json:"region"`
	Status        string    `gorm:"size:20;not null;index" json:"status"`
	RentAmount    float64   `gorm:"not null;default:0" json:"rent_amount"`
	PaymentStatus string    `gorm:"size:20;not null" json:"payment_status"`
	Type          string    `gorm:"size:20" json:"type"`
	Area          float64   `json:"area"`
	Rooms         int       `json:"rooms"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `gorm:"index;precision:6" json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}
