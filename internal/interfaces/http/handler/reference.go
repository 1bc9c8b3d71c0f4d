package handler

import (
	"github.com/gin-gonic/gin"
	apphr "github.com/hrapi/backend/internal/application/hr"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
)

// ReferenceHandler handles department, position and leave type endpoints
type ReferenceHandler struct {
	BaseHandler
	services *ServiceFactory
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(services *ServiceFactory) *ReferenceHandler {
	return &ReferenceHandler{services: services}
}

// service resolves the reference service, answering the error itself
func (h *ReferenceHandler) service(c *gin.Context) (*apphr.ReferenceService, bool) {
	svc, err := h.services.Reference(c)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return svc, true
}

// respond writes result or err, mapping a nil read result to 404
func respond[T any](h *BaseHandler, c *gin.Context, result *T, err error, notFound string) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result == nil {
		h.NotFound(c, notFound)
		return
	}
	h.Success(c, result)
}

// ListDepartments returns all departments
func (h *ReferenceHandler) ListDepartments(c *gin.Context) {
	svc, ok := h.service(c)
	if !ok {
		return
	}
	departments, err := svc.ListDepartments(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, departments)
}

// GetDepartment returns one department
func (h *ReferenceHandler) GetDepartment(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	department, err := svc.GetDepartment(c.Request.Context(), id)
	respond(&h.BaseHandler, c, department, err, "Department not found")
}

// CreateDepartment creates a department
func (h *ReferenceHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	department, err := svc.CreateDepartment(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, department)
}

// UpdateDepartment updates a department
func (h *ReferenceHandler) UpdateDepartment(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.DepartmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	department, err := svc.UpdateDepartment(c.Request.Context(), id, input)
	respond(&h.BaseHandler, c, department, err, "Department not found")
}

// DeleteDepartment deletes a department with no employees or positions
func (h *ReferenceHandler) DeleteDepartment(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	if err := svc.DeleteDepartment(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPositions returns all positions
func (h *ReferenceHandler) ListPositions(c *gin.Context) {
	svc, ok := h.service(c)
	if !ok {
		return
	}
	positions, err := svc.ListPositions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, positions)
}

// GetPosition returns one position
func (h *ReferenceHandler) GetPosition(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	position, err := svc.GetPosition(c.Request.Context(), id)
	respond(&h.BaseHandler, c, position, err, "Position not found")
}

// CreatePosition creates a position
func (h *ReferenceHandler) CreatePosition(c *gin.Context) {
	var req dto.PositionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	position, err := svc.CreatePosition(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, position)
}

// UpdatePosition updates a position
func (h *ReferenceHandler) UpdatePosition(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PositionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	position, err := svc.UpdatePosition(c.Request.Context(), id, input)
	respond(&h.BaseHandler, c, position, err, "Position not found")
}

// DeletePosition deletes a position no employee holds
func (h *ReferenceHandler) DeletePosition(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	if err := svc.DeletePosition(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListLeaveTypes returns all leave types
func (h *ReferenceHandler) ListLeaveTypes(c *gin.Context) {
	svc, ok := h.service(c)
	if !ok {
		return
	}
	leaveTypes, err := svc.ListLeaveTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leaveTypes)
}

// GetLeaveType returns one leave type
func (h *ReferenceHandler) GetLeaveType(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	leaveType, err := svc.GetLeaveType(c.Request.Context(), id)
	respond(&h.BaseHandler, c, leaveType, err, "Leave type not found")
}

// CreateLeaveType creates a leave type
func (h *ReferenceHandler) CreateLeaveType(c *gin.Context) {
	var req dto.LeaveTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	leaveType, err := svc.CreateLeaveType(c.Request.Context(), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, leaveType)
}

// UpdateLeaveType updates a leave type
func (h *ReferenceHandler) UpdateLeaveType(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.LeaveTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	leaveType, err := svc.UpdateLeaveType(c.Request.Context(), id, req.ToInput())
	respond(&h.BaseHandler, c, leaveType, err, "Leave type not found")
}

// DeleteLeaveType deletes a leave type
func (h *ReferenceHandler) DeleteLeaveType(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := h.service(c)
	if !ok {
		return
	}
	if err := svc.DeleteLeaveType(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
