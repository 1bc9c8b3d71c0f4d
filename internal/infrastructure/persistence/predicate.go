package persistence

import (
	"fmt"
	"reflect"

	"github.com/hrapi/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var supportedOperators = map[shared.Operator]bool{
	shared.OpEq:    true,
	shared.OpNotEq: true,
	shared.OpLt:    true,
	shared.OpLte:   true,
	shared.OpGt:    true,
	shared.OpGte:   true,
	shared.OpIn:    true,
	shared.OpNotIn: true,
}

// Predicate field whitelists. Only these columns may appear in a predicate,
// so a field name never reaches SQL unchecked.
var (
	EmployeeFilterFields = map[string]bool{
		"id":                    true,
		"employee_number":       true,
		"email":                 true,
		"department_id":         true,
		"position_id":           true,
		"manager_id":            true,
		"status":                true,
		"employment_type":       true,
		"is_department_manager": true,
		"hire_date":             true,
	}

	LeaveRequestFilterFields = map[string]bool{
		"id":            true,
		"employee_id":   true,
		"leave_type_id": true,
		"status":        true,
		"start_date":    true,
		"end_date":      true,
	}

	DepartmentFilterFields = map[string]bool{
		"id":                   true,
		"code":                 true,
		"name":                 true,
		"parent_department_id": true,
		"is_active":            true,
	}

	PositionFilterFields = map[string]bool{
		"id":            true,
		"code":          true,
		"department_id": true,
		"is_active":     true,
	}

	LeaveTypeFilterFields = map[string]bool{
		"id":        true,
		"code":      true,
		"is_active": true,
	}

	LeaveBalanceFilterFields = map[string]bool{
		"id":            true,
		"employee_id":   true,
		"leave_type_id": true,
		"year":          true,
	}
)

// ValidatePredicate checks every condition against the allowed fields and
// the supported operators
func ValidatePredicate(p shared.Predicate, allowedFields map[string]bool) error {
	for _, c := range p {
		if !allowedFields[c.Field] {
			return shared.NewInvalidInputError(fmt.Sprintf("Unsupported filter field: %q", c.Field))
		}
		if !supportedOperators[c.Op] {
			return shared.NewInvalidInputError(fmt.Sprintf("Unsupported filter operator: %q", c.Op))
		}
	}
	return nil
}

// applyPredicate adds one WHERE condition per predicate entry
func applyPredicate(db *gorm.DB, p shared.Predicate, allowedFields map[string]bool) (*gorm.DB, error) {
	if err := ValidatePredicate(p, allowedFields); err != nil {
		return nil, err
	}
	for _, c := range p {
		if c.Op == shared.OpNotIn && isEmptyList(c.Value) {
			// NOT IN () excludes nothing
			continue
		}
		db = db.Where(fmt.Sprintf("%s %s ?", c.Field, c.Op), c.Value)
	}
	return db, nil
}

func isEmptyList(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Invalid:
		return true
	}
	return false
}
