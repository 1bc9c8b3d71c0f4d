package hr

import (
	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
)

// AggregateTypeLeaveRequest is the aggregate type carried by leave events
const AggregateTypeLeaveRequest = "LeaveRequest"

// Leave request event types
const (
	EventTypeLeaveRequestCreated   = "LeaveRequestCreated"
	EventTypeLeaveRequestApproved  = "LeaveRequestApproved"
	EventTypeLeaveRequestRejected  = "LeaveRequestRejected"
	EventTypeLeaveRequestCancelled = "LeaveRequestCancelled"
)

// LeaveRequestEvent records a lifecycle step of a leave request
type LeaveRequestEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID   `json:"employee_id"`
	Status     LeaveStatus `json:"status"`
	TotalDays  int         `json:"total_days"`
}

// NewLeaveRequestEvent snapshots lr into an event of the given type
func NewLeaveRequestEvent(eventType string, lr *LeaveRequest) *LeaveRequestEvent {
	return &LeaveRequestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeLeaveRequest, lr.ID, lr.TenantID),
		EmployeeID:      lr.EmployeeID,
		Status:          lr.Status,
		TotalDays:       lr.TotalDays,
	}
}
