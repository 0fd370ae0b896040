package integration_test

import (
	"errors"
	"testing"
	"time"

	"github.com/localnerve/rentdb/internal/config"
	"github.com/localnerve/rentdb/internal/database"
	"github.com/localnerve/rentdb/internal/logging"
	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/types"
	"github.com/localnerve/rentdb/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *types.FlexFloat64 {
	v := types.FlexFloat64(f)
	return &v
}

// connectWithRetry waits out the gap between the port listening and the server accepting logins
func connectWithRetry(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()

	var lastErr error
	for attempt := 0; attempt < 30; attempt++ {
		db, err := database.Connect(cfg, logging.Discard())
		if err == nil {
			if err = ping(db); err == nil {
				return db
			}
			_ = database.Close(db)
		}
		lastErr = err
		time.Sleep(time.Second)
	}
	t.Fatalf("Failed to connect to database: %v", lastErr)
	return nil
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// TestWithContainerDatabase runs the transactional rules against a real server
func TestWithContainerDatabase(t *testing.T) {
	helpers.SkipUnlessContainers(t)

	tc, err := helpers.CreateDBContainer(t)
	require.NoError(t, err)
	defer tc.Terminate(t)

	cfg := tc.Config()
	db := connectWithRetry(t, cfg)
	defer database.Close(db)

	require.NoError(t, database.AutoMigrate(db))
	// Migrating twice must be harmless
	require.NoError(t, database.AutoMigrate(db))

	creds, err := services.NewCredentials(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL, cfg.BcryptCost)
	require.NoError(t, err)

	created, err := database.SeedAdmin(db, "admin", "admin123", creds.Hash)
	require.NoError(t, err)
	require.True(t, created)

	login, err := services.Login(db, creds, "admin", "admin123")
	require.NoError(t, err)
	actor := &services.Claims{UserID: login.User.ID, Username: login.User.Username, Role: login.User.Role}

	t.Run("PaymentPropagation", func(t *testing.T) {
		_, err := services.CreateProperty(db, actor, services.PropertyInput{
			ID:            strPtr("prp-100001"),
			Name:          strPtr("Appartement Ksar"),
			Province:      strPtr("Nouakchott"),
			Status:        strPtr(models.PropertyRented),
			PaymentStatus: strPtr(models.PaymentUnpaid),
		})
		require.NoError(t, err)

		tenant, err := services.CreateTenant(db, actor, services.TenantInput{
			Name:       strPtr("Mohamed"),
			PropertyID: strPtr("PRP-100001"),
		})
		require.NoError(t, err)

		_, err = services.CreatePayment(db, actor, services.PaymentInput{
			PropertyID: strPtr("PRP-100001"),
			Amount:     nil,
		})
		assert.True(t, errors.Is(err, services.ErrValidation))

		_, err = services.CreatePayment(db, actor, services.PaymentInput{
			PropertyID: strPtr("PRP-100001"),
			Amount:     floatPtr(5000),
			Status:     strPtr(models.PaymentOverdue),
		})
		require.NoError(t, err)

		property, err := services.GetProperty(db, "PRP-100001")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentOverdue, property.PaymentStatus)

		reloaded, err := services.GetTenant(db, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentOverdue, reloaded.PaymentStatus)
	})

	t.Run("DuplicateProperty", func(t *testing.T) {
		_, err := services.CreateProperty(db, actor, services.PropertyInput{ID: strPtr("PRP-100001"), Name: strPtr("Again")})
		assert.True(t, errors.Is(err, services.ErrDuplicateKey), "got %v", err)
	})

	t.Run("RestrictedDelete", func(t *testing.T) {
		_, err := services.DeleteProperty(db, actor, "PRP-100001")
		assert.True(t, errors.Is(err, services.ErrInUse), "got %v", err)

		_, err = services.GetProperty(db, "PRP-100001")
		assert.NoError(t, err)
	})

	t.Run("Reports", func(t *testing.T) {
		stats, err := services.StatsReport(db)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.TotalProperties)

		_, err = services.SummaryReport(db, time.Now())
		require.NoError(t, err)
	})

	t.Run("Health", func(t *testing.T) {
		result := services.HealthCheck(t.Context(), cfg, db, logging.Discard())
		assert.True(t, result.Healthy())
	})
}
