package hr

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
)

// Stored field names used in predicates over leave requests
const (
	FieldEmployeeID  = "employee_id"
	FieldLeaveTypeID = "leave_type_id"
	FieldStatus      = "status"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
)

const maxLeaveSpanDays = 365

// LeaveRequest is an employee's request for time off
type LeaveRequest struct {
	shared.TenantAggregateRoot
	EmployeeID       uuid.UUID
	LeaveTypeID      uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	TotalDays        int
	Reason           string
	Status           LeaveStatus
	ApprovedAt       *time.Time
	ApprovedBy       *uuid.UUID
	ApprovalComments string
	RejectedAt       *time.Time
	RejectedBy       *uuid.UUID
	RejectionReason  string
}

// NewLeaveRequest builds a Pending request. Dates are truncated to whole days.
func NewLeaveRequest(tenantID, employeeID, leaveTypeID uuid.UUID, start, end time.Time, reason string) (*LeaveRequest, error) {
	start, end = truncateDay(start), truncateDay(end)
	reason = strings.TrimSpace(reason)

	switch {
	case employeeID == uuid.Nil:
		return nil, shared.NewInvalidInputError("Employee is required")
	case leaveTypeID == uuid.Nil:
		return nil, shared.NewInvalidInputError("Leave type is required")
	case start.IsZero():
		return nil, shared.NewInvalidInputError("Start date is required")
	case end.IsZero():
		return nil, shared.NewInvalidInputError("End date is required")
	case end.Before(start):
		return nil, shared.NewInvalidInputError("End date must be greater than or equal to start date")
	case DaysBetween(start, end) > maxLeaveSpanDays:
		return nil, shared.NewInvalidInputError("Leave request cannot exceed 365 days")
	case len(reason) > 500:
		return nil, shared.NewInvalidInputError("Reason cannot exceed 500 characters")
	}

	lr := &LeaveRequest{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EmployeeID:          employeeID,
		LeaveTypeID:         leaveTypeID,
		StartDate:           start,
		EndDate:             end,
		TotalDays:           DaysBetween(start, end) + 1,
		Reason:              reason,
		Status:              LeaveStatusPending,
	}
	lr.AddDomainEvent(NewLeaveRequestEvent(EventTypeLeaveRequestCreated, lr))
	return lr, nil
}

// Approve moves a Pending request to Approved
func (lr *LeaveRequest) Approve(approvedBy uuid.UUID, comments string) error {
	if lr.Status != LeaveStatusPending {
		return lr.notPendingError()
	}
	now := time.Now().UTC()
	lr.Status = LeaveStatusApproved
	lr.ApprovedBy = &approvedBy
	lr.ApprovedAt = &now
	lr.ApprovalComments = strings.TrimSpace(comments)
	lr.changed(EventTypeLeaveRequestApproved)
	return nil
}

// Reject moves a Pending request to Rejected
func (lr *LeaveRequest) Reject(rejectedBy uuid.UUID, reason string) error {
	if lr.Status != LeaveStatusPending {
		return lr.notPendingError()
	}
	now := time.Now().UTC()
	lr.Status = LeaveStatusRejected
	lr.RejectedBy = &rejectedBy
	lr.RejectedAt = &now
	lr.RejectionReason = strings.TrimSpace(reason)
	lr.changed(EventTypeLeaveRequestRejected)
	return nil
}

// Cancel withdraws a Pending or Approved request
func (lr *LeaveRequest) Cancel() error {
	if lr.Status != LeaveStatusPending && lr.Status != LeaveStatusApproved {
		return shared.NewDomainError(shared.CodeInvalidTransition,
			fmt.Sprintf("Cannot cancel leave request with status: %s", lr.Status))
	}
	lr.Status = LeaveStatusCancelled
	lr.changed(EventTypeLeaveRequestCancelled)
	return nil
}

// EnsureDeletable fails for requests that already took effect
func (lr *LeaveRequest) EnsureDeletable() error {
	switch lr.Status {
	case LeaveStatusPending, LeaveStatusRejected, LeaveStatusCancelled:
		return nil
	default:
		return shared.NewDomainError(shared.CodeInvalidTransition,
			fmt.Sprintf("Cannot delete leave request with status: %s", lr.Status))
	}
}

// Overlaps reports whether the inclusive ranges [start,end] intersect
func (lr *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !lr.StartDate.After(truncateDay(end)) && !lr.EndDate.Before(truncateDay(start))
}

func (lr *LeaveRequest) notPendingError() error {
	return shared.NewDomainError(shared.CodeInvalidTransition,
		fmt.Sprintf("Leave request is not in pending status. Current status: %s", lr.Status))
}

func (lr *LeaveRequest) changed(eventType string) {
	lr.Touch()
	lr.IncrementVersion()
	lr.AddDomainEvent(NewLeaveRequestEvent(eventType, lr))
}

// DaysBetween returns the number of whole days from start to end
func DaysBetween(start, end time.Time) int {
	return int(truncateDay(end).Sub(truncateDay(start)).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
