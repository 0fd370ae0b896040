package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/rentdb/internal/models"
	"gorm.io/gorm"
)

// SessionUser is the public part of a user returned with a token
type SessionUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Language string `json:"language"`
}

// LoginResult is a signed token plus the user it was issued to
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      SessionUser `json:"user"`
}

// Login checks the password first, then the account status, so a disabled account is only
// revealed to someone who knows its password
func Login(db *gorm.DB, creds *Credentials, username, password string) (*LoginResult, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			creds.burn(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !creds.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrAccountDisabled
	}

	return issue(creds, &user)
}

// Refresh re-issues a token for the bearer of claims. Role and status are re-read from the store,
// so a demoted or disabled user cannot extend an old token.
func Refresh(db *gorm.DB, creds *Credentials, claims *Claims) (*LoginResult, error) {
	user, err := GetUser(db, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountDisabled
	}

	return issue(creds, user)
}

func issue(creds *Credentials, user *models.User) (*LoginResult, error) {
	token, expiresAt, err := creds.IssueToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: SessionUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			Language: user.Language,
		},
	}, nil
}

// CurrentUser loads the account behind a token
func CurrentUser(db *gorm.DB, id uint) (*models.User, error) {
	return GetUser(db, id)
}
