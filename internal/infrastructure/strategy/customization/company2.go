package customization

import (
	"time"

	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/shared/strategy"
	"github.com/hrapi/backend/internal/domain/tenancy"
)

const (
	// Company2InstanceName is the deployment instance this strategy targets
	Company2InstanceName    = "Company2"
	company2HireWindowYears = 5
)

// Company2Strategy builds on Restricted: only recently hired managers are
// visible and every new employee needs a manager.
type Company2Strategy struct {
	strategy.BaseStrategy
	base tenancy.CustomizationStrategy
	now  func() time.Time
}

// NewCompany2Strategy creates the Company2 strategy wrapping a Restricted base.
// now is the evaluation clock; nil means time.Now.
func NewCompany2Strategy(now func() time.Time) *Company2Strategy {
	if now == nil {
		now = time.Now
	}
	return &Company2Strategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"company2",
			strategy.StrategyTypeInstance,
			"Managers hired within five years; every employee needs a manager",
		),
		base: NewRestrictedStrategy(),
		now:  now,
	}
}

// AppliesTo matches the Company2 instance regardless of tenant type
func (s *Company2Strategy) AppliesTo(instanceName string, _ tenancy.TenantType) bool {
	return instanceMatches(instanceName, Company2InstanceName)
}

// FilterEmployees keeps managers hired within the last five years
func (s *Company2Strategy) FilterEmployees(employees []hr.Employee) []hr.Employee {
	cutoff := s.now().AddDate(-company2HireWindowYears, 0, 0)
	return filter(s.base.FilterEmployees(employees), func(e *hr.Employee) bool {
		return !e.HireDate.Before(cutoff)
	})
}

// CheckCreationRules requires an assigned manager
func (s *Company2Strategy) CheckCreationRules(employee *hr.Employee) error {
	if err := s.base.CheckCreationRules(employee); err != nil {
		return err
	}
	if !employee.HasManager() {
		return shared.NewRuleViolationError("Company2 requires all employees to have a manager assigned")
	}
	return nil
}

// CheckUpdateRules delegates to the base strategy
func (s *Company2Strategy) CheckUpdateRules(employee *hr.Employee) error {
	return s.base.CheckUpdateRules(employee)
}

var _ tenancy.CustomizationStrategy = (*Company2Strategy)(nil)
