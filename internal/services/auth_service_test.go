package services_test

import (
	"testing"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	cfg := testutil.Config(t)
	db := testutil.NewDB(t, cfg)
	creds := testutil.Credentials(t, cfg)

	active := testutil.CreateUser(t, db, creds, "alice", "secret-1", models.RoleOperator, models.UserActive)
	testutil.CreateUser(t, db, creds, "frozen", "secret-2", models.RoleAdmin, models.UserInactive)

	t.Run("active user gets a token for their id and role", func(t *testing.T) {
		result, err := services.Login(db, creds, "alice", "secret-1")
		require.NoError(t, err)
		assert.Equal(t, active.ID, result.User.ID)

		claims, err := creds.VerifyToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, active.ID, claims.UserID)
		assert.Equal(t, models.RoleOperator, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := services.Login(db, creds, "alice", "nope")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := services.Login(db, creds, "mallory", "secret-1")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("inactive user fails with the right password", func(t *testing.T) {
		_, err := services.Login(db, creds, "frozen", "secret-2")
		assert.ErrorIs(t, err, services.ErrAccountDisabled)
	})

	t.Run("inactive user fails with a wrong password", func(t *testing.T) {
		_, err := services.Login(db, creds, "frozen", "guess")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	cfg := testutil.Config(t)
	db := testutil.NewDB(t, cfg)
	creds := testutil.Credentials(t, cfg)

	user := testutil.CreateUser(t, db, creds, "alice", "secret-1", models.RoleOperator, models.UserActive)

	result, err := services.Refresh(db, creds, testutil.ClaimsOf(user))
	require.NoError(t, err)
	claims, err := creds.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Role comes from the store, not the old token
	require.NoError(t, db.Model(user).Update("role", models.RoleAdmin).Error)
	result, err = services.Refresh(db, creds, testutil.ClaimsOf(user))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.User.Role)

	require.NoError(t, db.Model(user).Update("status", models.UserInactive).Error)
	_, err = services.Refresh(db, creds, testutil.ClaimsOf(user))
	assert.ErrorIs(t, err, services.ErrAccountDisabled)

	require.NoError(t, db.Delete(user).Error)
	_, err = services.Refresh(db, creds, testutil.ClaimsOf(user))
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
