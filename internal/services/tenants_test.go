package services_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/testutil"
	"github.com/localnerve/rentdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTenant(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, "PRP-000001", "Nouakchott", models.PropertyRented, models.PaymentOverdue, 1000)

	t.Run("inherits the property's payment status", func(t *testing.T) {
		tenant, err := services.CreateTenant(f.db, f.actor, services.TenantInput{
			Name:       strPtr("Sidi"),
			PropertyID: strPtr("PRP-000001"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentOverdue, tenant.PaymentStatus)
		require.NotNil(t, tenant.PropertyID)
		assert.Equal(t, "PRP-000001", *tenant.PropertyID)
	})

	t.Run("explicit status wins", func(t *testing.T) {
		tenant, err := services.CreateTenant(f.db, f.actor, services.TenantInput{
			Name:          strPtr("Mariem"),
			PropertyID:    strPtr("PRP-000001"),
			PaymentStatus: strPtr(models.PaymentPaid),
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, tenant.PaymentStatus)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := services.CreateTenant(f.db, f.actor, services.TenantInput{
			Name:       strPtr("Nobody"),
			PropertyID: strPtr("PRP-404404"),
		})
		assert.ErrorIs(t, err, services.ErrInvalidReference)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := services.CreateTenant(f.db, f.actor, services.TenantInput{})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	tenants, err := services.ListTenants(f.db)
	require.NoError(t, err)
	assert.Len(t, tenants, 2)
}

func TestUpdateTenantDetaches(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, "PRP-000001", "Nouakchott", models.PropertyRented, models.PaymentUnpaid, 1000)
	tenant, err := services.CreateTenant(f.db, f.actor, services.TenantInput{
		Name:       strPtr("Sidi"),
		PropertyID: strPtr("PRP-000001"),
	})
	require.NoError(t, err)

	_, err = services.UpdateTenant(f.db, f.actor, tenant.ID, services.TenantInput{PropertyID: strPtr("PRP-404404")})
	assert.ErrorIs(t, err, services.ErrInvalidReference)

	_, err = services.UpdateTenant(f.db, f.actor, tenant.ID, services.TenantInput{PropertyID: strPtr("")})
	require.NoError(t, err)

	stored, err := services.GetTenant(f.db, tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PropertyID)

	_, err = services.UpdateTenant(f.db, f.actor, 4242, services.TenantInput{Notes: strPtr("x")})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteTenants(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, "PRP-000001", "Nouakchott", models.PropertyRented, models.PaymentUnpaid, 1000)

	var ids []uint
	for _, name := range []string{"A", "B", "C"} {
		tenant, err := services.CreateTenant(f.db, f.actor, services.TenantInput{Name: strPtr(name)})
		require.NoError(t, err)
		ids = append(ids, tenant.ID)
	}
	_, err := services.CreateContract(f.db, f.actor, services.ContractInput{
		PropertyID: strPtr("PRP-000001"),
		TenantID:   idPtr(ids[2]),
		StartDate:  datePtr("2024-01-01"),
	})
	require.NoError(t, err)

	_, err = services.DeleteTenant(f.db, f.actor, ids[2])
	assert.ErrorIs(t, err, services.ErrInUse)

	_, err = services.BulkDeleteTenants(f.db, f.actor, []types.FlexUint64{types.FlexUint64(ids[0]), types.FlexUint64(ids[2])})
	assert.ErrorIs(t, err, services.ErrInUse)

	result, err := services.BulkDeleteTenants(f.db, f.actor, []types.FlexUint64{types.FlexUint64(ids[0]), types.FlexUint64(ids[1])})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.AffectedRows)

	_, err = services.DeleteTenant(f.db, f.actor, ids[0])
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestReminderLink(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, "PRP-000001", "Nouakchott", models.PropertyRented, models.PaymentOverdue, 1000)

	tenant, err := services.CreateTenant(f.db, f.actor, services.TenantInput{
		Name:       strPtr("Sidi"),
		Whatsapp:   strPtr("+222 36 00 00 01"),
		PropertyID: strPtr("PRP-000001"),
	})
	require.NoError(t, err)

	reminder, err := services.ReminderLink(f.db, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "22236000001", reminder.Phone)
	assert.Contains(t, reminder.Message, "Bonjour Sidi")
	assert.Contains(t, reminder.Message, "Property PRP-000001")
	assert.Contains(t, reminder.Message, "En retard")

	require.True(t, strings.HasPrefix(reminder.Link, "https://wa.me/22236000001?text="))
	assert.NotContains(t, reminder.Link, "+")
	link, err := url.Parse(reminder.Link)
	require.NoError(t, err)
	assert.Equal(t, reminder.Message, link.Query().Get("text"))

	silent, err := services.CreateTenant(f.db, f.actor, services.TenantInput{Name: strPtr("No phone")})
	require.NoError(t, err)
	_, err = services.ReminderLink(f.db, silent.ID)
	assert.ErrorIs(t, err, services.ErrValidation)
}
