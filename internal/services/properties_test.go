package services_test

import (
	"testing"
	"time"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateProperty(t *testing.T) {
	f := newFixture(t)

	created, err := services.CreateProperty(f.db, f.actor, services.PropertyInput{
		ID:         strPtr("prp-123456"),
		Name:       strPtr("Villa Tevragh Zeina"),
		Province:   strPtr("Nouakchott"),
		RentAmount: floatPtr(45000),
		Type:       strPtr("villa"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PRP-123456", created.ID)
	assert.Equal(t, models.PropertyAvailable, created.Status)
	assert.Equal(t, models.PaymentUnpaid, created.PaymentStatus)

	stored, err := services.GetProperty(f.db, "PRP-123456")
	require.NoError(t, err)
	assert.Equal(t, created.Name, stored.Name)
	assert.Equal(t, created.RentAmount, stored.RentAmount)
	assert.Equal(t, created.Type, stored.Type)

	_, err = services.CreateProperty(f.db, f.actor, services.PropertyInput{
		ID:   strPtr("PRP-123456"),
		Name: strPtr("Again"),
	})
	assert.ErrorIs(t, err, services.ErrDuplicateKey)

	invalid := []services.PropertyInput{
		{ID: strPtr("PR-1"), Name: strPtr("bad id")},
		{ID: strPtr("PRP-000002")},
		{ID: strPtr("PRP-000003"), Name: strPtr("x"), Status: strPtr("sold")},
		{ID: strPtr("PRP-000004"), Name: strPtr("x"), RentAmount: floatPtr(-1)},
		{ID: strPtr("PRP-000005"), Name: strPtr("x"), Type: strPtr("castle")},
	}
	for _, in := range invalid {
		_, err := services.CreateProperty(f.db, f.actor, in)
		assert.ErrorIs(t, err, services.ErrValidation, "input %s", *in.ID)
	}
}

func TestListPropertiesKeepsInsertionOrder(t *testing.T) {
	f := newFixture(t)
	ids := []string{"ZZZ-000001", "AAA-000002", "MMM-000003"}
	for _, id := range ids {
		_, err := services.CreateProperty(f.db, f.actor, services.PropertyInput{ID: strPtr(id), Name: strPtr(id)})
		require.NoError(t, err)
	}

	for i := 0; i < 2; i++ {
		list, err := services.ListProperties(f.db)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for j, p := range list {
			assert.Equal(t, ids[j], p.ID)
		}
	}
}

func TestListPropertiesKeepsInsertionOrderOnAStoppedClock(t *testing.T) {
	f := newFixture(t)
	frozen := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	db := f.db.Session(&gorm.Session{NowFunc: func() time.Time { return frozen }})

	ids := []string{"ZZZ-000001", "AAA-000002", "MMM-000003"}
	for _, id := range ids {
		_, err := services.CreateProperty(db, f.actor, services.PropertyInput{ID: strPtr(id), Name: strPtr(id)})
		require.NoError(t, err)
	}

	list, err := services.ListProperties(f.db)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for j, p := range list {
		assert.Equal(t, ids[j], p.ID)
		if j > 0 {
			assert.True(t, p.CreatedAt.After(list[j-1].CreatedAt), "created_at must strictly increase")
		}
	}
}

func TestPropertyIDsAreCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	_, err := services.CreateProperty(f.db, f.actor, services.PropertyInput{ID: strPtr("PRP-100001"), Name: strPtr("Ksar")})
	require.NoError(t, err)

	property, err := services.GetProperty(f.db, "prp-100001")
	require.NoError(t, err)
	assert.Equal(t, "PRP-100001", property.ID)

	res, err := services.UpdateProperty(f.db, f.actor, "prp-100001", services.PropertyInput{Name: strPtr("Ksar Nord")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows)

	tenant, err := services.CreateTenant(f.db, f.actor, services.TenantInput{Name: strPtr("Sidi"), PropertyID: strPtr("prp-100001")})
	require.NoError(t, err)
	require.NotNil(t, tenant.PropertyID)
	assert.Equal(t, "PRP-100001", *tenant.PropertyID)

	_, err = services.DeleteTenant(f.db, f.actor, tenant.ID)
	require.NoError(t, err)
	res, err = services.DeleteProperty(f.db, f.actor, "prp-100001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows)
}

func TestUpdateProperty(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, "PRP-000001", "Nouakchott", models.PropertyAvailable, models.PaymentUnpaid, 1000)

	result, err := services.UpdateProperty(f.db, f.actor, "PRP-000001", services.PropertyInput{
		Status:     strPtr(models.PropertyRented),
		RentAmount: floatPtr(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.AffectedRows)

	stored, err := services.GetProperty(f.db, "PRP-000001")
	require.NoError(t, err)
	assert.Equal(t, models.PropertyRented, stored.Status)
	assert.Equal(t, 1200.0, stored.RentAmount)
	assert.Equal(t, "Nouakchott", stored.Province, "untouched fields survive")

	_, err = services.UpdateProperty(f.db, f.actor, "PRP-000001", services.PropertyInput{ID: strPtr("PRP-999999")})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = services.UpdateProperty(f.db, f.actor, "PRP-404404", services.PropertyInput{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteProperty(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, "PRP-000001", "Nouakchott", models.PropertyRented, models.PaymentUnpaid, 1000)
	testutil.CreateProperty(t, f.db, "PRP-000002", "Nouakchott", models.PropertyAvailable, models.PaymentUnpaid, 1000)

	_, err := services.CreateTenant(f.db, f.actor, services.TenantInput{
		Name:       strPtr("Aminetou"),
		PropertyID: strPtr("PRP-000001"),
	})
	require.NoError(t, err)

	_, err = services.DeleteProperty(f.db, f.actor, "PRP-000001")
	assert.ErrorIs(t, err, services.ErrInUse)
	_, err = services.GetProperty(f.db, "PRP-000001")
	assert.NoError(t, err)

	result, err := services.DeleteProperty(f.db, f.actor, "PRP-000002")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.AffectedRows)

	_, err = services.DeleteProperty(f.db, f.actor, "PRP-000002")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestBulkDeletePropertiesIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"PRP-000001", "PRP-000002", "PRP-000003"} {
		testutil.CreateProperty(t, f.db, id, "Nouakchott", models.PropertyAvailable, models.PaymentUnpaid, 1000)
	}
	_, err := services.CreateMaintenance(f.db, f.actor, services.MaintenanceInput{PropertyID: strPtr("PRP-000003")})
	require.NoError(t, err)

	_, err = services.BulkDeleteProperties(f.db, f.actor, []string{"PRP-000001", "PRP-404404"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = services.BulkDeleteProperties(f.db, f.actor, []string{"PRP-000001", "PRP-000003"})
	assert.ErrorIs(t, err, services.ErrInUse)

	list, err := services.ListProperties(f.db)
	require.NoError(t, err)
	assert.Len(t, list, 3, "failed bulk deletes remove nothing")

	result, err := services.BulkDeleteProperties(f.db, f.actor, []string{"PRP-000001", "PRP-000002", "PRP-000001"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.AffectedRows)

	_, err = services.BulkDeleteProperties(f.db, f.actor, nil)
	assert.ErrorIs(t, err, services.ErrValidation)
}
