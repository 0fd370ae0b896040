package services

import (
	"errors"
	"fmt"

	"github.com/localnerve/rentdb/internal/database"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the addressed row does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey means a unique key (username, property id) is already taken
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInvalidReference means a property, tenant or user id points at nothing
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInUse means the row is still referenced and cannot be deleted
	ErrInUse = errors.New("in use")
	// ErrValidation means the input is well-formed JSON but semantically wrong
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials means the username or password is wrong
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled means the password was right but the account is inactive
	ErrAccountDisabled = errors.New("account disabled")
	// ErrInvalidToken means the token is malformed, forged or expired
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden means the caller may not perform the operation
	ErrForbidden = errors.New("forbidden")
)

// notFound wraps ErrNotFound with the entity and id
func notFound(entity string, id interface{}) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}

// classify maps store errors onto the service error set
func classify(err error, entity string, id interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(entity, id)
	case database.IsDuplicateKey(err):
		return fmt.Errorf("%s %v already exists: %w", entity, id, ErrDuplicateKey)
	}
	return err
}
