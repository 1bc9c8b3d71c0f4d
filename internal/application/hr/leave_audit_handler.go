package hr

import (
	"context"

	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LeaveAuditHandler writes an audit log line for every leave request event
type LeaveAuditHandler struct {
	logger *zap.Logger
}

// NewLeaveAuditHandler creates a new leave audit handler
func NewLeaveAuditHandler(logger *zap.Logger) *LeaveAuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveAuditHandler{logger: logger.Named("leave_audit")}
}

// EventTypes implements shared.EventHandler
func (h *LeaveAuditHandler) EventTypes() []string {
	return []string{
		hr.EventTypeLeaveRequestCreated,
		hr.EventTypeLeaveRequestApproved,
		hr.EventTypeLeaveRequestRejected,
		hr.EventTypeLeaveRequestCancelled,
	}
}

// Handle implements shared.EventHandler
func (h *LeaveAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*hr.LeaveRequestEvent)
	if !ok {
		return nil
	}
	h.logger.Info("Leave request event",
		zap.String("event_type", e.EventType()),
		zap.String("event_id", e.EventID().String()),
		zap.String("tenant_id", e.TenantID().String()),
		zap.String("leave_request_id", e.AggregateID().String()),
		zap.String("employee_id", e.EmployeeID.String()),
		zap.String("status", e.Status.String()),
		zap.Int("total_days", e.TotalDays),
		zap.Time("occurred_at", e.OccurredAt()),
	)
	return nil
}

var _ shared.EventHandler = (*LeaveAuditHandler)(nil)
