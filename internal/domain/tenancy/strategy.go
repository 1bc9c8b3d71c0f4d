package tenancy

import (
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared/strategy"
)

// CustomizationStrategy is a pluggable rule set applied to one tenant's HR data
type CustomizationStrategy interface {
	strategy.Strategy

	// AppliesTo is the selection predicate
	AppliesTo(instanceName string, tenantType TenantType) bool

	// FilterEmployees returns the view of employees this tenant may see.
	// It must not modify its input.
	FilterEmployees(employees []hr.Employee) []hr.Employee

	// CheckCreationRules runs before a new employee is persisted
	CheckCreationRules(employee *hr.Employee) error

	// CheckUpdateRules runs before an employee update is persisted
	CheckUpdateRules(employee *hr.Employee) error
}

// StrategySelector picks the strategy for a configuration
type StrategySelector interface {
	SelectStrategy(config TenantConfiguration) CustomizationStrategy
}
