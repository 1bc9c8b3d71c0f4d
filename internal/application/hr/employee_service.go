package hr

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// EmployeeService handles employee operations for one tenant. The
// customization strategy is selected from the tenant configuration on every
// decision that needs it.
type EmployeeService struct {
	store    hr.Store
	selector tenancy.StrategySelector
	config   tenancy.TenantConfiguration
	logger   *zap.Logger
}

// NewEmployeeService creates a new employee service bound to store
func NewEmployeeService(
	store hr.Store,
	selector tenancy.StrategySelector,
	config tenancy.TenantConfiguration,
	logger *zap.Logger,
) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{
		store:    store,
		selector: selector,
		config:   config,
		logger:   logger,
	}
}

// Strategy returns the customization strategy currently selected for the tenant
func (s *EmployeeService) Strategy() tenancy.CustomizationStrategy {
	return s.selector.SelectStrategy(s.config)
}

// GetAll returns the employees visible under the tenant's strategy
func (s *EmployeeService) GetAll(ctx context.Context) ([]EmployeeDTO, error) {
	employees, err := s.store.Employees().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return ToEmployeeDTOs(s.Strategy().FilterEmployees(employees)), nil
}

// GetByID returns an employee, or nil when none exists
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error) {
	e, err := s.store.Employees().GetByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	dto := ToEmployeeDTO(e)
	return &dto, nil
}

// GetByNumber returns the employee with the given number, or nil
func (s *EmployeeService) GetByNumber(ctx context.Context, number string) (*EmployeeDTO, error) {
	e, err := s.store.Employees().GetFirstWhere(ctx, shared.Where(hr.FieldEmployeeNumber, shared.OpEq, number))
	if err != nil || e == nil {
		return nil, err
	}
	dto := ToEmployeeDTO(e)
	return &dto, nil
}

// GetByDepartment returns the visible employees of a department
func (s *EmployeeService) GetByDepartment(ctx context.Context, departmentID uuid.UUID) ([]EmployeeDTO, error) {
	return s.list(ctx, shared.Where(hr.FieldDepartmentID, shared.OpEq, departmentID))
}

// GetByManager returns the visible direct reports of a manager
func (s *EmployeeService) GetByManager(ctx context.Context, managerID uuid.UUID) ([]EmployeeDTO, error) {
	return s.list(ctx, shared.Where(hr.FieldManagerID, shared.OpEq, managerID))
}

// Create adds an employee after uniqueness and tenant rule checks
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*EmployeeDTO, error) {
	employee, err := hr.NewEmployee(s.store.TenantID(), input)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, employee, nil); err != nil {
		return nil, err
	}
	if err := s.Strategy().CheckCreationRules(employee); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, employee); err != nil {
		return nil, err
	}

	if err := s.store.Employees().Add(ctx, employee); err != nil {
		s.logger.Error("Failed to create employee",
			zap.String("employee_number", employee.EmployeeNumber),
			zap.Error(err))
		return nil, err
	}
	s.logger.Info("Employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("employee_number", employee.EmployeeNumber))

	dto := ToEmployeeDTO(employee)
	return &dto, nil
}

// Update replaces an employee's attributes
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, input EmployeeInput) (*EmployeeDTO, error) {
	employee, err := s.store.Employees().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, shared.NewNotFoundError("Employee", id)
	}

	if err := employee.Apply(input); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, employee, &id); err != nil {
		return nil, err
	}
	if employee.ManagerID != nil && *employee.ManagerID == id {
		return nil, shared.NewInvalidInputError("Employee cannot be their own manager")
	}
	if err := s.Strategy().CheckUpdateRules(employee); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, employee); err != nil {
		return nil, err
	}

	if err := s.store.Employees().Update(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("Employee updated",
		zap.String("employee_id", employee.ID.String()),
		zap.Int("version", employee.Version))

	dto := ToEmployeeDTO(employee)
	return &dto, nil
}

// Delete soft-deletes an employee
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewNotFoundError("Employee", id)
	}
	if err := s.store.Employees().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Employee deleted", zap.String("employee_id", id.String()))
	return nil
}

// Exists reports whether an employee with id exists
func (s *EmployeeService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.store.Employees().ExistsWhere(ctx, shared.Where(hr.FieldID, shared.OpEq, id))
}

// NumberExists reports whether an employee number is taken
func (s *EmployeeService) NumberExists(ctx context.Context, number string) (bool, error) {
	return s.store.Employees().ExistsWhere(ctx, shared.Where(hr.FieldEmployeeNumber, shared.OpEq, number))
}

// EmailExists reports whether an email is taken
func (s *EmployeeService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.store.Employees().ExistsWhere(ctx, shared.Where(hr.FieldEmail, shared.OpEq, email))
}

func (s *EmployeeService) list(ctx context.Context, p shared.Predicate) ([]EmployeeDTO, error) {
	employees, err := s.store.Employees().GetWhere(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return ToEmployeeDTOs(s.Strategy().FilterEmployees(employees)), nil
}

// ensureUnique checks employee number then email, ignoring the record
// being updated when exclude is set
func (s *EmployeeService) ensureUnique(ctx context.Context, e *hr.Employee, exclude *uuid.UUID) error {
	checks := []struct {
		field, label, value string
	}{
		{hr.FieldEmployeeNumber, "Employee number", e.EmployeeNumber},
		{hr.FieldEmail, "Email", e.Email},
	}
	for _, c := range checks {
		p := shared.Where(c.field, shared.OpEq, c.value)
		if exclude != nil {
			p = p.And(hr.FieldID, shared.OpNotEq, *exclude)
		}
		taken, err := s.store.Employees().ExistsWhere(ctx, p)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewDuplicateKeyError(c.label, c.value)
		}
	}
	return nil
}

func (s *EmployeeService) ensureReferences(ctx context.Context, e *hr.Employee) error {
	dept, err := s.store.Departments().GetByID(ctx, e.DepartmentID)
	if err != nil {
		return err
	}
	if dept == nil {
		return shared.NewNotFoundError("Department", e.DepartmentID)
	}
	pos, err := s.store.Positions().GetByID(ctx, e.PositionID)
	if err != nil {
		return err
	}
	if pos == nil {
		return shared.NewNotFoundError("Position", e.PositionID)
	}
	if e.HasManager() {
		manager, err := s.store.Employees().GetByID(ctx, *e.ManagerID)
		if err != nil {
			return err
		}
		if manager == nil {
			return shared.NewNotFoundError("Employee", *e.ManagerID)
		}
	}
	return nil
}
