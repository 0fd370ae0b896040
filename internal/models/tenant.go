package models

import "time"

// Tenant ratings
const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingAverage   = "average"
	RatingBad       = "bad"
)

// Tenant is a renter, optionally attached to one property
type Tenant struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Whatsapp      string    `gorm:"size:32" json:"whatsapp"`
	PropertyID    *string   `gorm:"size:32;index" json:"property_id"`
	PaymentStatus string    `gorm:"size:20" json:"payment_status"`
	IDCard        string    `gorm:"size:255" json:"id_card"`
	Rating        string    `gorm:"size:20" json:"rating"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName overrides the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}
