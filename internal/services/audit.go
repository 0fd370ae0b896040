package services

import (
	"fmt"

	"github.com/localnerve/rentdb/internal/models"
	"gorm.io/gorm"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

// recordOperation appends an audit row using the caller's transaction
func recordOperation(tx *gorm.DB, actor *Claims, opType string, details interface{}) error {
	payload, err := models.NewJSON(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	var operatorID uint
	if actor != nil {
		operatorID = actor.UserID
	}

	entry := models.OperationLog{
		Type:       opType,
		OperatorID: operatorID,
		Details:    payload,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record %s: %w", opType, err)
	}
	return nil
}

// ListOperations returns the most recent audit rows, newest first
func ListOperations(db *gorm.DB, limit int) ([]models.OperationLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	var logs []models.OperationLog
	err := db.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
