// Package testutil builds isolated stores, credentials and accounts for tests
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/rentdb/internal/config"
	"github.com/localnerve/rentdb/internal/database"
	"github.com/localnerve/rentdb/internal/logging"
	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Config returns a valid configuration for an in-memory store unique to the caller
func Config(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:              "0",
		UploadDir:         t.TempDir(),
		UploadMaxBytes:    1 << 20,
		DBType:            "sqlite",
		DBDatabase:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBConnectionLimit: 1,
		DBLogLevel:        "silent",
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		TokenIssuer:       "rentdb-test",
		BcryptCost:        bcrypt.MinCost,
		AdminUsername:     "admin",
		AdminPassword:     "admin123",
	}
}

// NewDB opens and migrates a private in-memory store that is closed when the test ends
func NewDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()

	db, err := database.Connect(cfg, logging.Discard())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")
	return db
}

// Credentials builds a credential service from cfg
func Credentials(t *testing.T, cfg *config.Config) *services.Credentials {
	t.Helper()

	creds, err := services.NewCredentials(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL, cfg.BcryptCost)
	require.NoError(t, err)
	return creds
}

// CreateUser inserts a user directly, bypassing the service rules
func CreateUser(t *testing.T, db *gorm.DB, creds *services.Credentials, username, password, role, status string) *models.User {
	t.Helper()

	digest, err := creds.Hash(password)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Password: digest,
		Role:     role,
		Status:   status,
		Language: "fr",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Token issues a bearer token for user
func Token(t *testing.T, creds *services.Credentials, user *models.User) string {
	t.Helper()

	token, _, err := creds.IssueToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return token
}

// ClaimsOf builds the claims a verified token for user would carry
func ClaimsOf(user *models.User) *services.Claims {
	return &services.Claims{UserID: user.ID, Username: user.Username, Role: user.Role}
}

// CreateProperty inserts a property directly
func CreateProperty(t *testing.T, db *gorm.DB, id, province, status, paymentStatus string, rent float64) *models.Property {
	t.Helper()

	property := &models.Property{
		ID:            id,
		Name:          "Property " + id,
		Province:      province,
		Status:        status,
		PaymentStatus: paymentStatus,
		RentAmount:    rent,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

// AssertStatus verifies the HTTP status code, showing the body on mismatch
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d: %s", expected, resp.StatusCode, string(body))
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NoError(t, json.Unmarshal(body, target), "failed to decode JSON: %s", string(body))
}
