package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LeaveMetrics receives leave lifecycle transitions
type LeaveMetrics interface {
	RecordLeaveTransition(ctx context.Context, from, to hr.LeaveStatus)
}

type noopLeaveMetrics struct{}

func (noopLeaveMetrics) RecordLeaveTransition(context.Context, hr.LeaveStatus, hr.LeaveStatus) {}

// LeaveService handles leave requests for one tenant
type LeaveService struct {
	store          hr.Store
	eventPublisher shared.EventPublisher
	metrics        LeaveMetrics
	logger         *zap.Logger
}

// LeaveServiceOption configures a LeaveService
type LeaveServiceOption func(*LeaveService)

// WithLeaveMetrics sets the transition metrics sink
func WithLeaveMetrics(m LeaveMetrics) LeaveServiceOption {
	return func(s *LeaveService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewLeaveService creates a new leave service bound to store.
// eventPublisher may be nil.
func NewLeaveService(
	store hr.Store,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
	opts ...LeaveServiceOption,
) *LeaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &LeaveService{
		store:          store,
		eventPublisher: eventPublisher,
		metrics:        noopLeaveMetrics{},
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll returns every leave request, newest first
func (s *LeaveService) GetAll(ctx context.Context) ([]LeaveRequestDTO, error) {
	requests, err := s.store.LeaveRequests().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return ToLeaveRequestDTOs(requests), nil
}

// GetByID returns a leave request, or nil when none exists
func (s *LeaveService) GetByID(ctx context.Context, id uuid.UUID) (*LeaveRequestDTO, error) {
	lr, err := s.store.LeaveRequests().GetByID(ctx, id)
	if err != nil || lr == nil {
		return nil, err
	}
	dto := ToLeaveRequestDTO(lr)
	return &dto, nil
}

// GetByEmployee returns an employee's leave requests
func (s *LeaveService) GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequestDTO, error) {
	requests, err := s.store.LeaveRequests().GetWhere(ctx, shared.Where(hr.FieldEmployeeID, shared.OpEq, employeeID))
	if err != nil {
		return nil, err
	}
	return ToLeaveRequestDTOs(requests), nil
}

// GetByStatus returns the leave requests in a status
func (s *LeaveService) GetByStatus(ctx context.Context, status hr.LeaveStatus) ([]LeaveRequestDTO, error) {
	if !status.IsValid() {
		return nil, shared.NewInvalidInputError(fmt.Sprintf("Invalid leave status: %s", status))
	}
	requests, err := s.store.LeaveRequests().GetWhere(ctx, shared.Where(hr.FieldStatus, shared.OpEq, status))
	if err != nil {
		return nil, err
	}
	return ToLeaveRequestDTOs(requests), nil
}

// GetBalancesByEmployee returns an employee's leave balances, latest year first
func (s *LeaveService) GetBalancesByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveBalanceDTO, error) {
	balances, err := s.store.LeaveBalances().GetWhere(ctx, shared.Where(hr.FieldEmployeeID, shared.OpEq, employeeID))
	if err != nil {
		return nil, err
	}
	return convert(balances, ToLeaveBalanceDTO), nil
}

// Create files a new Pending leave request. The employee and leave type must
// exist and the range must not overlap a request that still reserves its dates.
func (s *LeaveService) Create(ctx context.Context, input CreateLeaveRequestInput) (*LeaveRequestDTO, error) {
	lr, err := hr.NewLeaveRequest(s.store.TenantID(), input.EmployeeID, input.LeaveTypeID, input.StartDate, input.EndDate, input.Reason)
	if err != nil {
		return nil, err
	}

	employee, err := s.store.Employees().GetByID(ctx, lr.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, shared.NewNotFoundError("Employee", lr.EmployeeID)
	}
	leaveType, err := s.store.LeaveTypes().GetByID(ctx, lr.LeaveTypeID)
	if err != nil {
		return nil, err
	}
	if leaveType == nil {
		return nil, shared.NewNotFoundError("LeaveType", lr.LeaveTypeID)
	}

	overlapping, err := s.store.LeaveRequests().ExistsWhere(ctx, OverlapPredicate(lr.EmployeeID, lr.StartDate, lr.EndDate))
	if err != nil {
		return nil, err
	}
	if overlapping {
		return nil, shared.NewDomainError(shared.CodeOverlapConflict,
			"Leave request overlaps with an existing leave request")
	}

	if err := s.store.LeaveRequests().Add(ctx, lr); err != nil {
		return nil, err
	}
	s.logger.Info("Leave request created",
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("employee_id", lr.EmployeeID.String()),
		zap.Int("total_days", lr.TotalDays))
	s.publish(ctx, lr)

	dto := ToLeaveRequestDTO(lr)
	return &dto, nil
}

// Approve approves a Pending request and charges its days to the matching
// leave balance when one exists
func (s *LeaveService) Approve(ctx context.Context, id, approvedBy uuid.UUID, comments string) (*LeaveRequestDTO, error) {
	return s.transition(ctx, id, func(tx hr.Store, lr *hr.LeaveRequest) error {
		if err := lr.Approve(approvedBy, comments); err != nil {
			return err
		}
		return adjustBalance(ctx, tx, lr, lr.TotalDays)
	})
}

// Reject rejects a Pending request
func (s *LeaveService) Reject(ctx context.Context, id, rejectedBy uuid.UUID, reason string) (*LeaveRequestDTO, error) {
	return s.transition(ctx, id, func(_ hr.Store, lr *hr.LeaveRequest) error {
		return lr.Reject(rejectedBy, reason)
	})
}

// Cancel withdraws a Pending or Approved request. Days charged on approval
// are returned to the balance.
func (s *LeaveService) Cancel(ctx context.Context, id uuid.UUID) (*LeaveRequestDTO, error) {
	return s.transition(ctx, id, func(tx hr.Store, lr *hr.LeaveRequest) error {
		wasApproved := lr.Status == hr.LeaveStatusApproved
		if err := lr.Cancel(); err != nil {
			return err
		}
		if wasApproved {
			return adjustBalance(ctx, tx, lr, -lr.TotalDays)
		}
		return nil
	})
}

// Delete soft-deletes a request that has not taken effect
func (s *LeaveService) Delete(ctx context.Context, id uuid.UUID) error {
	lr, err := findLeaveRequest(ctx, s.store, id)
	if err != nil {
		return err
	}
	if err := lr.EnsureDeletable(); err != nil {
		return err
	}
	if err := s.store.LeaveRequests().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Leave request deleted",
		zap.String("leave_request_id", id.String()),
		zap.String("status", lr.Status.String()))
	return nil
}

// transition loads the request, applies fn and saves it inside one transaction
func (s *LeaveService) transition(ctx context.Context, id uuid.UUID, fn func(tx hr.Store, lr *hr.LeaveRequest) error) (*LeaveRequestDTO, error) {
	var (
		changed *hr.LeaveRequest
		from    hr.LeaveStatus
	)
	err := s.store.Transaction(ctx, func(tx hr.Store) error {
		lr, err := findLeaveRequest(ctx, tx, id)
		if err != nil {
			return err
		}
		from = lr.Status
		if err := fn(tx, lr); err != nil {
			return err
		}
		if err := tx.LeaveRequests().Update(ctx, lr); err != nil {
			return err
		}
		changed = lr
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLeaveTransition(ctx, from, changed.Status)
	s.logger.Info("Leave request status changed",
		zap.String("leave_request_id", changed.ID.String()),
		zap.String("from", from.String()),
		zap.String("to", changed.Status.String()))
	s.publish(ctx, changed)

	dto := ToLeaveRequestDTO(changed)
	return &dto, nil
}

func (s *LeaveService) publish(ctx context.Context, lr *hr.LeaveRequest) {
	events := lr.GetDomainEvents()
	lr.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish leave request events",
			zap.String("leave_request_id", lr.ID.String()),
			zap.Error(err))
	}
}

// OverlapPredicate matches requests of employeeID whose inclusive date range
// intersects [start, end] and whose status still reserves the dates
func OverlapPredicate(employeeID uuid.UUID, start, end time.Time) shared.Predicate {
	return shared.Where(hr.FieldEmployeeID, shared.OpEq, employeeID).
		And(hr.FieldStatus, shared.OpNotIn, []hr.LeaveStatus{hr.LeaveStatusRejected, hr.LeaveStatusCancelled}).
		And(hr.FieldStartDate, shared.OpLte, end).
		And(hr.FieldEndDate, shared.OpGte, start)
}

func findLeaveRequest(ctx context.Context, store hr.Store, id uuid.UUID) (*hr.LeaveRequest, error) {
	lr, err := store.LeaveRequests().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lr == nil {
		return nil, shared.NewNotFoundError("LeaveRequest", id)
	}
	return lr, nil
}

// adjustBalance charges days (negative to refund) to the balance matching the
// request's employee, leave type and start year. Missing balances are skipped.
func adjustBalance(ctx context.Context, tx hr.Store, lr *hr.LeaveRequest, days int) error {
	balance, err := tx.LeaveBalances().GetFirstWhere(ctx,
		shared.Where(hr.FieldEmployeeID, shared.OpEq, lr.EmployeeID).
			And(hr.FieldLeaveTypeID, shared.OpEq, lr.LeaveTypeID).
			And(hr.FieldYear, shared.OpEq, lr.StartDate.Year()))
	if err != nil || balance == nil {
		return err
	}
	balance.Consume(days)
	return tx.LeaveBalances().Update(ctx, balance)
}
