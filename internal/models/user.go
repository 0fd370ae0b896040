package models

import (
	"time"
)

// User roles
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User account statuses
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User is an operator or administrator of the dashboard
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Language  string    `gorm:"size:10;not null" json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive reports whether the user may sign in
func (u User) IsActive() bool {
	return u.Status == UserActive
}
