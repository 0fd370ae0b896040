package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/testutil"
	"github.com/localnerve/rentdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceLifecycle(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, "PRP-000001", "Nouakchott", models.PropertyRented, models.PaymentUnpaid, 1000)

	_, err := services.CreateMaintenance(f.db, f.actor, services.MaintenanceInput{PropertyID: strPtr("PRP-404404")})
	assert.ErrorIs(t, err, services.ErrInvalidReference)

	_, err = services.CreateMaintenance(f.db, f.actor, services.MaintenanceInput{
		PropertyID: strPtr("PRP-000001"),
		Cost:       floatPtr(-5),
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	record, err := services.CreateMaintenance(f.db, f.actor, services.MaintenanceInput{
		PropertyID: strPtr("PRP-000001"),
		Type:       strPtr("plumbing"),
		Date:       datePtr("2024-05-10"),
		Cost:       floatPtr(2500),
		Provider:   strPtr("Plomberie Centrale"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenancePending, record.Status)

	view, err := services.GetMaintenance(f.db, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Property PRP-000001", view.PropertyName)
	assert.Equal(t, "2024-05-10", time.Time(view.Date).Format("2006-01-02"))

	_, err = services.UpdateMaintenance(f.db, f.actor, record.ID, services.MaintenanceInput{Status: strPtr(models.MaintenanceCompleted)})
	require.NoError(t, err)
	_, err = services.UpdateMaintenance(f.db, f.actor, record.ID, services.MaintenanceInput{Status: strPtr("done")})
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = services.UpdateMaintenance(f.db, f.actor, 4242, services.MaintenanceInput{Cost: floatPtr(1)})
	assert.ErrorIs(t, err, services.ErrNotFound)

	list, err := services.ListMaintenance(f.db)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.MaintenanceCompleted, list[0].Status)

	_, err = services.DeleteMaintenance(f.db, f.actor, record.ID)
	require.NoError(t, err)
	_, err = services.DeleteMaintenance(f.db, f.actor, record.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestContractLifecycle(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, "PRP-000001", "Nouakchott", models.PropertyRented, models.PaymentUnpaid, 1000)
	tenant, err := services.CreateTenant(f.db, f.actor, services.TenantInput{Name: strPtr("Sidi")})
	require.NoError(t, err)

	t.Run("rejects bad input", func(t *testing.T) {
		cases := []struct {
			in   services.ContractInput
			want error
		}{
			{services.ContractInput{PropertyID: strPtr("PRP-000001"), TenantID: idPtr(tenant.ID)}, services.ErrValidation},
			{services.ContractInput{TenantID: idPtr(tenant.ID), StartDate: datePtr("2024-01-01")}, services.ErrValidation},
			{services.ContractInput{
				PropertyID: strPtr("PRP-000001"),
				TenantID:   idPtr(tenant.ID),
				StartDate:  datePtr("2024-06-01"),
				EndDate:    datePtr("2024-01-01"),
			}, services.ErrValidation},
			{services.ContractInput{PropertyID: strPtr("PRP-404404"), TenantID: idPtr(tenant.ID), StartDate: datePtr("2024-01-01")}, services.ErrInvalidReference},
			{services.ContractInput{PropertyID: strPtr("PRP-000001"), TenantID: idPtr(4242), StartDate: datePtr("2024-01-01")}, services.ErrInvalidReference},
		}
		for _, c := range cases {
			_, err := services.CreateContract(f.db, f.actor, c.in)
			assert.ErrorIs(t, err, c.want)
		}
	})

	contract, err := services.CreateContract(f.db, f.actor, services.ContractInput{
		PropertyID: strPtr("PRP-000001"),
		TenantID:   idPtr(tenant.ID),
		StartDate:  datePtr("2024-01-01"),
		Terms:      strPtr("12 mois"),
	})
	require.NoError(t, err, "open-ended contract")
	assert.Equal(t, models.ContractActive, contract.Status)

	view, err := services.GetContract(f.db, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sidi", view.TenantName)
	assert.Equal(t, "Property PRP-000001", view.PropertyName)
	assert.Nil(t, view.EndDate)
	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"end_date":null`)

	_, err = services.UpdateContract(f.db, f.actor, contract.ID, services.ContractInput{EndDate: datePtr("2023-12-31")})
	assert.ErrorIs(t, err, services.ErrValidation, "end before the stored start")

	_, err = services.UpdateContract(f.db, f.actor, contract.ID, services.ContractInput{
		EndDate: datePtr("2024-12-31"),
		Status:  strPtr(models.ContractExpired),
	})
	require.NoError(t, err)

	list, err := services.ListContracts(f.db)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ContractExpired, list[0].Status)
	require.NotNil(t, list[0].EndDate)
	assert.Equal(t, "2024-12-31", time.Time(*list[0].EndDate).Format("2006-01-02"))

	// An empty end date reopens the term
	_, err = services.UpdateContract(f.db, f.actor, contract.ID, services.ContractInput{EndDate: &types.FlexDate{}})
	require.NoError(t, err)
	view, err = services.GetContract(f.db, contract.ID)
	require.NoError(t, err)
	assert.Nil(t, view.EndDate)

	_, err = services.DeleteContract(f.db, f.actor, contract.ID)
	require.NoError(t, err)
	_, err = services.GetContract(f.db, contract.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
