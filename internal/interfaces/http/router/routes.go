package router

import (
	"github.com/hrapi/backend/internal/interfaces/http/handler"
)

// EmployeeRoutes mounts the employee endpoints under /employees
func EmployeeRoutes(h *handler.EmployeeHandler) *DomainGroup {
	return NewDomainGroup("employees", "/employees").
		GET("", h.List).
		GET("/by-number/:number", h.GetByNumber).
		GET("/by-department/:departmentId", h.ListByDepartment).
		GET("/by-manager/:managerId", h.ListByManager).
		GET("/:id", h.Get).
		GET("/:id/leave-balances", h.LeaveBalances).
		POST("", h.Create).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

// LeaveRoutes mounts the leave request endpoints under /leave-requests
func LeaveRoutes(h *handler.LeaveHandler) *DomainGroup {
	return NewDomainGroup("leave-requests", "/leave-requests").
		GET("", h.List).
		GET("/by-employee/:employeeId", h.ListByEmployee).
		GET("/by-status/:status", h.ListByStatus).
		GET("/:id", h.Get).
		POST("", h.Create).
		POST("/:id/approve", h.Approve).
		POST("/:id/reject", h.Reject).
		POST("/:id/cancel", h.Cancel).
		DELETE("/:id", h.Delete)
}

// ReferenceRoutes mounts the department, position and leave type endpoints
func ReferenceRoutes(h *handler.ReferenceHandler) []RouteRegistrar {
	departments := NewDomainGroup("departments", "/departments").
		GET("", h.ListDepartments).
		GET("/:id", h.GetDepartment).
		POST("", h.CreateDepartment).
		PUT("/:id", h.UpdateDepartment).
		DELETE("/:id", h.DeleteDepartment)

	positions := NewDomainGroup("positions", "/positions").
		GET("", h.ListPositions).
		GET("/:id", h.GetPosition).
		POST("", h.CreatePosition).
		PUT("/:id", h.UpdatePosition).
		DELETE("/:id", h.DeletePosition)

	leaveTypes := NewDomainGroup("leave-types", "/leave-types").
		GET("", h.ListLeaveTypes).
		GET("/:id", h.GetLeaveType).
		POST("", h.CreateLeaveType).
		PUT("/:id", h.UpdateLeaveType).
		DELETE("/:id", h.DeleteLeaveType)

	return []RouteRegistrar{departments, positions, leaveTypes}
}

// CurrentTenantRoutes mounts GET /tenant
func CurrentTenantRoutes(h *handler.TenantHandler) *DomainGroup {
	return NewDomainGroup("tenant", "/tenant").GET("", h.Current)
}

// AdminRoutes mounts the tenant directory administration under /admin
func AdminRoutes(h *handler.TenantHandler) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin")
	admin.Group("tenants", "/tenants").
		GET("", h.List).
		POST("", h.Create).
		GET("/:id", h.Get).
		POST("/:id/provision", h.Provision).
		POST("/:id/activate", h.Activate).
		POST("/:id/deactivate", h.Deactivate).
		PUT("/:id/connection", h.RotateConnection).
		PUT("/:id/settings", h.UpdateSettings)
	admin.Group("tokens", "/tokens").
		POST("/revoke", h.RevokeToken)
	return admin
}

// HealthRoutes mounts the liveness, database and info endpoints under /health
func HealthRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("health", "/health").
		GET("", h.Health).
		GET("/database", h.DatabaseHealth).
		GET("/info", h.GetSystemInfo)
}
