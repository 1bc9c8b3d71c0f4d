// Package customization holds the built-in tenant customization strategies.
package customization

import (
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared/strategy"
	"github.com/hrapi/backend/internal/domain/tenancy"
)

// StandardStrategyName is the name of the fallback strategy
const StandardStrategyName = "standard"

// StandardStrategy gives full employee access and adds no rules
type StandardStrategy struct {
	strategy.BaseStrategy
}

// NewStandardStrategy creates the Standard strategy
func NewStandardStrategy() *StandardStrategy {
	return &StandardStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			StandardStrategyName,
			strategy.StrategyTypeTenantType,
			"Full employee access, no additional rules",
		),
	}
}

// AppliesTo matches Standard tenants
func (s *StandardStrategy) AppliesTo(_ string, tenantType tenancy.TenantType) bool {
	return tenantType == tenancy.TenantTypeStandard
}

// FilterEmployees returns the input unchanged
func (s *StandardStrategy) FilterEmployees(employees []hr.Employee) []hr.Employee {
	return employees
}

// CheckCreationRules accepts every employee
func (s *StandardStrategy) CheckCreationRules(_ *hr.Employee) error {
	return nil
}

// CheckUpdateRules accepts every employee
func (s *StandardStrategy) CheckUpdateRules(_ *hr.Employee) error {
	return nil
}

var _ tenancy.CustomizationStrategy = (*StandardStrategy)(nil)
