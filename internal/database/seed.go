package database

import (
	"fmt"

	"github.com/localnerve/rentdb/internal/models"
	"gorm.io/gorm"
)

// HashFunc turns a plaintext password into a stored digest
type HashFunc func(plain string) (string, error)

// SeedAdmin creates the initial administrator when the users table is empty.
// It reports whether a user was created.
func SeedAdmin(db *gorm.DB, username, password string, hash HashFunc) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	digest, err := hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Username: username,
		Password: digest,
		Role:     models.RoleAdmin,
		Status:   models.UserActive,
		Language: "fr",
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	return true, nil
}
