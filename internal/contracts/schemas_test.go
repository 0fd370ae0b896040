package contracts_test

import (
	"testing"

	"github.com/localnerve/rentdb/internal/contracts"
	"github.com/stretchr/testify/assert"
)

func TestEverySchemaCompiles(t *testing.T) {
	names := contracts.Names()
	for _, name := range []string{
		contracts.Login,
		contracts.UserCreate,
		contracts.UserUpdate,
		contracts.PropertyCreate,
		contracts.PropertyUpdate,
		contracts.TenantCreate,
		contracts.TenantUpdate,
		contracts.PaymentCreate,
		contracts.PaymentUpdate,
		contracts.MaintenanceCreate,
		contracts.MaintenanceUpdate,
		contracts.ContractCreate,
		contracts.ContractUpdate,
		contracts.BulkDelete,
	} {
		assert.Contains(t, names, name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		body   string
		valid  bool
	}{
		{"login", contracts.Login, `{"username": "admin", "password": "admin123"}`, true},
		{"login missing password", contracts.Login, `{"username": "admin"}`, false},
		{"not json", contracts.Login, `{`, false},
		{"property", contracts.PropertyCreate, `{"id": "PRP-123456", "name": "Villa", "rent_amount": "4500"}`, true},
		{"property bad id", contracts.PropertyCreate, `{"id": "123", "name": "Villa"}`, false},
		{"property bad status", contracts.PropertyCreate, `{"id": "PRP-123456", "name": "Villa", "status": "sold"}`, false},
		{"payment with default status", contracts.PaymentCreate, `{"property_id": "PRP-123456", "amount": 10}`, true},
		{"payment via referenced base", contracts.PaymentCreate, `{"property_id": "PRP-123456", "amount": 10, "method": "barter"}`, false},
		{"payment update", contracts.PaymentUpdate, `{"status": "overdue"}`, true},
		{"tenant needs a name", contracts.TenantCreate, `{"whatsapp": "+222 1"}`, false},
		{"tenant phone charset", contracts.TenantCreate, `{"name": "A", "whatsapp": "call me"}`, false},
		{"bulk single id", contracts.BulkDelete, `{"ids": "PRP-123456"}`, true},
		{"bulk list", contracts.BulkDelete, `{"ids": [1, "2"]}`, true},
		{"bulk empty list", contracts.BulkDelete, `{"ids": []}`, false},
		{"user short password", contracts.UserCreate, `{"username": "a", "password": "123"}`, false},
		{"user update blank password", contracts.UserUpdate, `{"password": ""}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := contracts.Validate(tt.schema, []byte(tt.body))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, contracts.ErrInvalidBody)
			}
		})
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	err := contracts.Validate("nope", []byte(`{}`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, contracts.ErrInvalidBody)
}
