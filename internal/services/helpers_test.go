package services_test

import (
	"testing"
	"time"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/testutil"
	"github.com/localnerve/rentdb/internal/types"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *types.FlexFloat64 {
	v := types.FlexFloat64(f)
	return &v
}

func idPtr(id uint) *types.FlexUint64 {
	v := types.FlexUint64(id)
	return &v
}

func datePtr(s string) *types.FlexDate {
	t, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &types.FlexDate{Time: t}
}

func dateOf(t time.Time) *types.FlexDate {
	return &types.FlexDate{Time: t}
}

// fixture is a fresh store with one active admin
type fixture struct {
	db    *gorm.DB
	creds *services.Credentials
	admin *models.User
	actor *services.Claims
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testutil.Config(t)
	db := testutil.NewDB(t, cfg)
	creds := testutil.Credentials(t, cfg)
	admin := testutil.CreateUser(t, db, creds, "admin", "admin123", models.RoleAdmin, models.UserActive)
	return &fixture{db: db, creds: creds, admin: admin, actor: testutil.ClaimsOf(admin)}
}
