package customization

import (
	"strings"

	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/shared/strategy"
	"github.com/hrapi/backend/internal/domain/tenancy"
)

const (
	// Company1InstanceName is the deployment instance this strategy targets
	Company1InstanceName = "Company1"
	company1NumberPrefix = "C1"
)

// Company1Strategy builds on Standard: contractors are hidden and employee
// numbers must carry the C1 prefix.
type Company1Strategy struct {
	strategy.BaseStrategy
	base tenancy.CustomizationStrategy
}

// NewCompany1Strategy creates the Company1 strategy wrapping a Standard base
func NewCompany1Strategy() *Company1Strategy {
	return &Company1Strategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"company1",
			strategy.StrategyTypeInstance,
			"Standard rules without contractors; employee numbers start with C1",
		),
		base: NewStandardStrategy(),
	}
}

// AppliesTo matches the Company1 instance regardless of tenant type
func (s *Company1Strategy) AppliesTo(instanceName string, _ tenancy.TenantType) bool {
	return instanceMatches(instanceName, Company1InstanceName)
}

// FilterEmployees drops contract employees from the base view
func (s *Company1Strategy) FilterEmployees(employees []hr.Employee) []hr.Employee {
	return filter(s.base.FilterEmployees(employees), func(e *hr.Employee) bool {
		return e.EmploymentType != hr.EmploymentTypeContract
	})
}

// CheckCreationRules requires the C1 employee number prefix
func (s *Company1Strategy) CheckCreationRules(employee *hr.Employee) error {
	if err := s.base.CheckCreationRules(employee); err != nil {
		return err
	}
	if !strings.HasPrefix(employee.EmployeeNumber, company1NumberPrefix) {
		return shared.NewRuleViolationError("Company1 employee numbers must start with 'C1'")
	}
	return nil
}

// CheckUpdateRules delegates to the base strategy
func (s *Company1Strategy) CheckUpdateRules(employee *hr.Employee) error {
	return s.base.CheckUpdateRules(employee)
}

var _ tenancy.CustomizationStrategy = (*Company1Strategy)(nil)
