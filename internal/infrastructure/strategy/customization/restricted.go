package customization

import (
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared/strategy"
	"github.com/hrapi/backend/internal/domain/tenancy"
)

// RestrictedStrategyName is the name of the managers-only strategy
const RestrictedStrategyName = "restricted"

// RestrictedStrategy exposes department managers only
type RestrictedStrategy struct {
	strategy.BaseStrategy
}

// NewRestrictedStrategy creates the Restricted strategy
func NewRestrictedStrategy() *RestrictedStrategy {
	return &RestrictedStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			RestrictedStrategyName,
			strategy.StrategyTypeTenantType,
			"Only department managers are visible",
		),
	}
}

// AppliesTo matches Restricted tenants
func (s *RestrictedStrategy) AppliesTo(_ string, tenantType tenancy.TenantType) bool {
	return tenantType == tenancy.TenantTypeRestricted
}

// FilterEmployees keeps department managers
func (s *RestrictedStrategy) FilterEmployees(employees []hr.Employee) []hr.Employee {
	return filter(employees, func(e *hr.Employee) bool {
		return e.IsDepartmentManager
	})
}

// CheckCreationRules accepts every employee
func (s *RestrictedStrategy) CheckCreationRules(_ *hr.Employee) error {
	return nil
}

// CheckUpdateRules accepts every employee
func (s *RestrictedStrategy) CheckUpdateRules(_ *hr.Employee) error {
	return nil
}

// filter copies the matching employees into a new slice
func filter(employees []hr.Employee, keep func(e *hr.Employee) bool) []hr.Employee {
	out := make([]hr.Employee, 0, len(employees))
	for i := range employees {
		if keep(&employees[i]) {
			out = append(out, employees[i])
		}
	}
	return out
}

var _ tenancy.CustomizationStrategy = (*RestrictedStrategy)(nil)
