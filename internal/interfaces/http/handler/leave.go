package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
)

// LeaveHandler handles leave request endpoints
type LeaveHandler struct {
	BaseHandler
	services *ServiceFactory
}

// NewLeaveHandler creates a new LeaveHandler
func NewLeaveHandler(services *ServiceFactory) *LeaveHandler {
	return &LeaveHandler{services: services}
}

// List returns every leave request
func (h *LeaveHandler) List(c *gin.Context) {
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	requests, err := svc.GetAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, requests)
}

// Get returns one leave request
func (h *LeaveHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	request, err := svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if request == nil {
		h.NotFound(c, "Leave request not found")
		return
	}
	h.Success(c, request)
}

// ListByEmployee returns the leave requests of one employee
func (h *LeaveHandler) ListByEmployee(c *gin.Context) {
	employeeID, ok := h.ParseUUIDParam(c, "employeeId")
	if !ok {
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	requests, err := svc.GetByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, requests)
}

// ListByStatus returns the leave requests in a status, given by name or number
func (h *LeaveHandler) ListByStatus(c *gin.Context) {
	status, ok := hr.ParseLeaveStatus(c.Param("status"))
	if !ok {
		h.BadRequest(c, "Invalid leave status")
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	requests, err := svc.GetByStatus(c.Request.Context(), status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, requests)
}

// Create submits a new pending leave request
func (h *LeaveHandler) Create(c *gin.Context) {
	var req dto.CreateLeaveRequestRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	request, err := svc.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, request)
}

// Approve approves a pending leave request
func (h *LeaveHandler) Approve(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ApproveLeaveRequest
	if !h.BindJSON(c, &req) {
		return
	}
	approver, ok := h.ParseUUIDField(c, "approved_by", req.ApprovedBy)
	if !ok {
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	request, err := svc.Approve(c.Request.Context(), id, approver, req.Comments)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, request)
}

// Reject rejects a pending leave request
func (h *LeaveHandler) Reject(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RejectLeaveRequest
	if !h.BindJSON(c, &req) {
		return
	}
	rejecter, ok := h.ParseUUIDField(c, "rejected_by", req.RejectedBy)
	if !ok {
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	request, err := svc.Reject(c.Request.Context(), id, rejecter, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, request)
}

// Cancel cancels a pending or approved leave request
func (h *LeaveHandler) Cancel(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	request, err := svc.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, request)
}

// Delete removes a leave request
func (h *LeaveHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
