package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	BaseHandler
	services *ServiceFactory
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(services *ServiceFactory) *EmployeeHandler {
	return &EmployeeHandler{services: services}
}

// List returns the employees visible under the tenant's strategy
func (h *EmployeeHandler) List(c *gin.Context) {
	svc, err := h.services.Employees(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	employees, err := svc.GetAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// Get returns one employee
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, err := h.services.Employees(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	employee, err := svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if employee == nil {
		h.NotFound(c, "Employee not found")
		return
	}
	h.Success(c, employee)
}

// GetByNumber returns the employee with the given employee number
func (h *EmployeeHandler) GetByNumber(c *gin.Context) {
	svc, err := h.services.Employees(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	employee, err := svc.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if employee == nil {
		h.NotFound(c, "Employee not found")
		return
	}
	h.Success(c, employee)
}

// ListByDepartment returns the employees of a department
func (h *EmployeeHandler) ListByDepartment(c *gin.Context) {
	departmentID, ok := h.ParseUUIDParam(c, "departmentId")
	if !ok {
		return
	}
	svc, err := h.services.Employees(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	employees, err := svc.GetByDepartment(c.Request.Context(), departmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// ListByManager returns the direct reports of a manager
func (h *EmployeeHandler) ListByManager(c *gin.Context) {
	managerID, ok := h.ParseUUIDParam(c, "managerId")
	if !ok {
		return
	}
	svc, err := h.services.Employees(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	employees, err := svc.GetByManager(c.Request.Context(), managerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// Create registers a new employee
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.EmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	svc, err := h.services.Employees(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	employee, err := svc.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// Update replaces an employee's attributes
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	svc, err := h.services.Employees(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	employee, err := svc.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Delete soft-deletes an employee
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, err := h.services.Employees(c)
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

// LeaveBalances lists an employee's leave balances
func (h *EmployeeHandler) LeaveBalances(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	svc, err := h.services.Leave(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	balances, err := svc.GetBalancesByEmployee(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balances)
}
