package hr

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReferenceService handles departments, positions and leave types for one tenant
type ReferenceService struct {
	store  hr.Store
	logger *zap.Logger
}

// NewReferenceService creates a new reference data service bound to store
func NewReferenceService(store hr.Store, logger *zap.Logger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{store: store, logger: logger}
}

// ListDepartments returns every department ordered by code
func (s *ReferenceService) ListDepartments(ctx context.Context) ([]DepartmentDTO, error) {
	items, err := s.store.Departments().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(items, ToDepartmentDTO), nil
}

// GetDepartment returns a department, or nil when none exists
func (s *ReferenceService) GetDepartment(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error) {
	return getOne(ctx, s.store.Departments(), id, ToDepartmentDTO)
}

// CreateDepartment adds a department with a unique code
func (s *ReferenceService) CreateDepartment(ctx context.Context, input DepartmentInput) (*DepartmentDTO, error) {
	d, err := hr.NewDepartment(s.store.TenantID(), input.Name, input.Code, input.Description)
	if err != nil {
		return nil, err
	}
	applyDepartment(d, input)
	if err := s.ensureDepartmentLinks(ctx, d); err != nil {
		return nil, err
	}
	if err := ensureCodeFree(ctx, s.store.Departments(), "Department code", d.Code, nil); err != nil {
		return nil, err
	}
	if err := s.store.Departments().Add(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("Department created", zap.String("department_id", d.ID.String()), zap.String("code", d.Code))
	dto := ToDepartmentDTO(d)
	return &dto, nil
}

// UpdateDepartment replaces a department's attributes
func (s *ReferenceService) UpdateDepartment(ctx context.Context, id uuid.UUID, input DepartmentInput) (*DepartmentDTO, error) {
	d, err := mustGet(ctx, s.store.Departments(), "Department", id)
	if err != nil {
		return nil, err
	}
	if err := d.Rename(input.Name, input.Code, input.Description); err != nil {
		return nil, err
	}
	applyDepartment(d, input)
	if d.ParentDepartmentID != nil && *d.ParentDepartmentID == id {
		return nil, shared.NewInvalidInputError("Department cannot be its own parent")
	}
	if err := s.ensureDepartmentLinks(ctx, d); err != nil {
		return nil, err
	}
	if err := ensureCodeFree(ctx, s.store.Departments(), "Department code", d.Code, &id); err != nil {
		return nil, err
	}
	if err := s.store.Departments().Update(ctx, d); err != nil {
		return nil, err
	}
	dto := ToDepartmentDTO(d)
	return &dto, nil
}

// DeleteDepartment soft-deletes a department without employees
func (s *ReferenceService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := mustGet(ctx, s.store.Departments(), "Department", id); err != nil {
		return err
	}
	inUse, err := s.store.Employees().ExistsWhere(ctx, shared.Where(hr.FieldDepartmentID, shared.OpEq, id))
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewRuleViolationError("Department still has employees")
	}
	return s.store.Departments().Delete(ctx, id)
}

// ListPositions returns every position ordered by code
func (s *ReferenceService) ListPositions(ctx context.Context) ([]PositionDTO, error) {
	items, err := s.store.Positions().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(items, ToPositionDTO), nil
}

// GetPosition returns a position, or nil when none exists
func (s *ReferenceService) GetPosition(ctx context.Context, id uuid.UUID) (*PositionDTO, error) {
	return getOne(ctx, s.store.Positions(), id, ToPositionDTO)
}

// CreatePosition adds a position with a unique code
func (s *ReferenceService) CreatePosition(ctx context.Context, input PositionInput) (*PositionDTO, error) {
	p, err := hr.NewPosition(s.store.TenantID(), input.Title, input.Code, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.applyPosition(ctx, p, input); err != nil {
		return nil, err
	}
	if err := ensureCodeFree(ctx, s.store.Positions(), "Position code", p.Code, nil); err != nil {
		return nil, err
	}
	if err := s.store.Positions().Add(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Position created", zap.String("position_id", p.ID.String()), zap.String("code", p.Code))
	dto := ToPositionDTO(p)
	return &dto, nil
}

// UpdatePosition replaces a position's attributes
func (s *ReferenceService) UpdatePosition(ctx context.Context, id uuid.UUID, input PositionInput) (*PositionDTO, error) {
	p, err := mustGet(ctx, s.store.Positions(), "Position", id)
	if err != nil {
		return nil, err
	}
	if err := p.Rename(input.Title, input.Code, input.Description); err != nil {
		return nil, err
	}
	if err := s.applyPosition(ctx, p, input); err != nil {
		return nil, err
	}
	if err := ensureCodeFree(ctx, s.store.Positions(), "Position code", p.Code, &id); err != nil {
		return nil, err
	}
	if err := s.store.Positions().Update(ctx, p); err != nil {
		return nil, err
	}
	dto := ToPositionDTO(p)
	return &dto, nil
}

// DeletePosition soft-deletes a position nobody holds
func (s *ReferenceService) DeletePosition(ctx context.Context, id uuid.UUID) error {
	if _, err := mustGet(ctx, s.store.Positions(), "Position", id); err != nil {
		return err
	}
	inUse, err := s.store.Employees().ExistsWhere(ctx, shared.Where(hr.FieldPositionID, shared.OpEq, id))
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewRuleViolationError("Position is still assigned to employees")
	}
	return s.store.Positions().Delete(ctx, id)
}

// ListLeaveTypes returns every leave type ordered by code
func (s *ReferenceService) ListLeaveTypes(ctx context.Context) ([]LeaveTypeDTO, error) {
	items, err := s.store.LeaveTypes().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(items, ToLeaveTypeDTO), nil
}

// GetLeaveType returns a leave type, or nil when none exists
func (s *ReferenceService) GetLeaveType(ctx context.Context, id uuid.UUID) (*LeaveTypeDTO, error) {
	return getOne(ctx, s.store.LeaveTypes(), id, ToLeaveTypeDTO)
}

// CreateLeaveType adds a leave type with a unique code
func (s *ReferenceService) CreateLeaveType(ctx context.Context, input LeaveTypeInput) (*LeaveTypeDTO, error) {
	lt, err := hr.NewLeaveType(s.store.TenantID(), input.Name, input.Code, input.MaxDaysPerYear)
	if err != nil {
		return nil, err
	}
	if err := lt.Rename(input.Name, input.Code, input.Description); err != nil {
		return nil, err
	}
	applyLeaveType(lt, input)
	if err := ensureCodeFree(ctx, s.store.LeaveTypes(), "Leave type code", lt.Code, nil); err != nil {
		return nil, err
	}
	if err := s.store.LeaveTypes().Add(ctx, lt); err != nil {
		return nil, err
	}
	s.logger.Info("Leave type created", zap.String("leave_type_id", lt.ID.String()), zap.String("code", lt.Code))
	dto := ToLeaveTypeDTO(lt)
	return &dto, nil
}

// UpdateLeaveType replaces a leave type's attributes
func (s *ReferenceService) UpdateLeaveType(ctx context.Context, id uuid.UUID, input LeaveTypeInput) (*LeaveTypeDTO, error) {
	lt, err := mustGet(ctx, s.store.LeaveTypes(), "LeaveType", id)
	if err != nil {
		return nil, err
	}
	if err := lt.Rename(input.Name, input.Code, input.Description); err != nil {
		return nil, err
	}
	if err := lt.SetAllowance(input.MaxDaysPerYear); err != nil {
		return nil, err
	}
	applyLeaveType(lt, input)
	if err := ensureCodeFree(ctx, s.store.LeaveTypes(), "Leave type code", lt.Code, &id); err != nil {
		return nil, err
	}
	if err := s.store.LeaveTypes().Update(ctx, lt); err != nil {
		return nil, err
	}
	dto := ToLeaveTypeDTO(lt)
	return &dto, nil
}

// DeleteLeaveType soft-deletes a leave type
func (s *ReferenceService) DeleteLeaveType(ctx context.Context, id uuid.UUID) error {
	if _, err := mustGet(ctx, s.store.LeaveTypes(), "LeaveType", id); err != nil {
		return err
	}
	return s.store.LeaveTypes().Delete(ctx, id)
}

func (s *ReferenceService) ensureDepartmentLinks(ctx context.Context, d *hr.Department) error {
	if d.ParentDepartmentID != nil {
		if _, err := mustGet(ctx, s.store.Departments(), "Department", *d.ParentDepartmentID); err != nil {
			return err
		}
	}
	if d.ManagerID != nil {
		if _, err := mustGet(ctx, s.store.Employees(), "Employee", *d.ManagerID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReferenceService) applyPosition(ctx context.Context, p *hr.Position, input PositionInput) error {
	if err := p.SetSalaryBand(input.MinSalary, input.MaxSalary); err != nil {
		return err
	}
	if input.DepartmentID != nil {
		if _, err := mustGet(ctx, s.store.Departments(), "Department", *input.DepartmentID); err != nil {
			return err
		}
	}
	p.DepartmentID = input.DepartmentID
	p.Level = input.Level
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	return nil
}

func applyDepartment(d *hr.Department, input DepartmentInput) {
	d.ParentDepartmentID = input.ParentDepartmentID
	d.ManagerID = input.ManagerID
	if input.IsActive != nil {
		d.IsActive = *input.IsActive
	}
}

func applyLeaveType(lt *hr.LeaveType, input LeaveTypeInput) {
	if input.RequiresApproval != nil {
		lt.RequiresApproval = *input.RequiresApproval
	}
	lt.IsCarryForward = input.IsCarryForward
	lt.MaxCarryForwardDays = input.MaxCarryForwardDays
	if input.IsActive != nil {
		lt.IsActive = *input.IsActive
	}
}

func getOne[T, D any](ctx context.Context, repo shared.Repository[T], id uuid.UUID, toDTO func(*T) D) (*D, error) {
	item, err := repo.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	dto := toDTO(item)
	return &dto, nil
}

func mustGet[T any](ctx context.Context, repo shared.Repository[T], entity string, id uuid.UUID) (*T, error) {
	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewNotFoundError(entity, id)
	}
	return item, nil
}

func ensureCodeFree[T any](ctx context.Context, repo shared.Repository[T], label, code string, exclude *uuid.UUID) error {
	p := shared.Where(hr.FieldCode, shared.OpEq, code)
	if exclude != nil {
		p = p.And(hr.FieldID, shared.OpNotEq, *exclude)
	}
	taken, err := repo.ExistsWhere(ctx, p)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDuplicateKeyError(label, code)
	}
	return nil
}
