// common.go
//
// A property rental data service: portfolio, tenants, payments and reports over REST
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of rentdb.
// rentdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// rentdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with rentdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/types"
	"gorm.io/gorm"
)

// MutationResult reports what a write touched
type MutationResult struct {
	ID           interface{} `json:"id,omitempty"`
	AffectedRows int64       `json:"affectedRows"`
}

// dependent describes a table that may reference a row being deleted
type dependent struct {
	label  string
	model  interface{}
	column string
}

var (
	propertyDependents = []dependent{
		{"tenants", &models.Tenant{}, "property_id"},
		{"payments", &models.Payment{}, "property_id"},
		{"maintenance records", &models.Maintenance{}, "property_id"},
		{"contracts", &models.Contract{}, "property_id"},
	}
	tenantDependents = []dependent{
		{"payments", &models.Payment{}, "tenant_id"},
		{"contracts", &models.Contract{}, "tenant_id"},
	}
	userDependents = []dependent{
		{"payments", &models.Payment{}, "operator_id"},
	}
)

// countWhere counts rows of model matching the condition
func countWhere(tx *gorm.DB, model interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	err := tx.Model(model).Where(query, args...).Count(&n).Error
	return n, err
}

// requireReference fails with ErrInvalidReference when no row of model has the id
func requireReference(tx *gorm.DB, model interface{}, entity string, id interface{}) error {
	n, err := countWhere(tx, model, "id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %v does not exist: %w", entity, id, ErrInvalidReference)
	}
	return nil
}

// refuseIfReferenced fails with ErrInUse when any dependent row still points at id
func refuseIfReferenced(tx *gorm.DB, entity string, ids interface{}, deps []dependent) error {
	var uses []string
	for _, dep := range deps {
		n, err := countWhere(tx, dep.model, dep.column+" IN ?", ids)
		if err != nil {
			return err
		}
		if n > 0 {
			uses = append(uses, fmt.Sprintf("%d %s", n, dep.label))
		}
	}
	if len(uses) > 0 {
		return fmt.Errorf("%s %v is referenced by %s: %w", entity, ids, strings.Join(uses, ", "), ErrInUse)
	}
	return nil
}

// validationError wraps ErrValidation with a message
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// str returns the trimmed value of an optional string
func str(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// propertyCode normalizes a property id; codes are stored upper case
func propertyCode(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// orDefault returns def when s is nil or blank
func orDefault(s *string, def string) string {
	if v := str(s); v != "" {
		return v
	}
	return def
}

// oneOf checks an enum field. Empty values pass when allowEmpty is set.
func oneOf(field, value string, allowEmpty bool, allowed ...string) error {
	if value == "" && allowEmpty {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return validationError("%s must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
}

// columns collects the provided fields of a partial update
type columns map[string]interface{}

func (c columns) setString(name string, v *string) {
	if v != nil {
		c[name] = strings.TrimSpace(*v)
	}
}

func (c columns) setFloat(name string, v *types.FlexFloat64) {
	if v != nil {
		c[name] = v.Float64()
	}
}

func (c columns) names() []string {
	names := make([]string, 0, len(c))
	for k := range c {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// applyUpdates confirms the row exists, then writes the provided columns.
// Existence is checked first because MySQL reports zero affected rows for unchanged values.
func applyUpdates(tx *gorm.DB, model interface{}, entity string, id interface{}, updates columns) (int64, error) {
	n, err := countWhere(tx, model, "id = ?", id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, notFound(entity, id)
	}
	if len(updates) == 0 {
		return 0, nil
	}

	res := tx.Model(model).Where("id = ?", id).Updates(map[string]interface{}(updates))
	if res.Error != nil {
		return 0, classify(res.Error, entity, id)
	}
	return res.RowsAffected, nil
}

// deleteRow removes one row by id, failing with ErrNotFound when nothing was removed
func deleteRow(tx *gorm.DB, model interface{}, entity string, id interface{}) (int64, error) {
	res := tx.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, notFound(entity, id)
	}
	return res.RowsAffected, nil
}
