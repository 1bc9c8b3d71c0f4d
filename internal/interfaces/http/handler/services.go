package handler

import (
	"github.com/gin-gonic/gin"
	apphr "github.com/hrapi/backend/internal/application/hr"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/logger"
	"github.com/hrapi/backend/internal/interfaces/http/middleware"
)

// ServiceFactory builds the application services bound to the store the
// tenant middleware opened for the current request.
type ServiceFactory struct {
	selector  tenancy.StrategySelector
	config    tenancy.TenantConfiguration
	events    shared.EventPublisher
	leaveOpts []apphr.LeaveServiceOption
}

// NewServiceFactory creates a service factory. events may be nil.
func NewServiceFactory(
	selector tenancy.StrategySelector,
	config tenancy.TenantConfiguration,
	events shared.EventPublisher,
	leaveOpts ...apphr.LeaveServiceOption,
) *ServiceFactory {
	return &ServiceFactory{
		selector:  selector,
		config:    config,
		events:    events,
		leaveOpts: leaveOpts,
	}
}

// Employees returns the employee service for the request's tenant
func (f *ServiceFactory) Employees(c *gin.Context) (*apphr.EmployeeService, error) {
	store, err := requestStore(c)
	if err != nil {
		return nil, err
	}
	return apphr.NewEmployeeService(store, f.selector, f.config, logger.GetGinLogger(c)), nil
}

// Leave returns the leave service for the request's tenant
func (f *ServiceFactory) Leave(c *gin.Context) (*apphr.LeaveService, error) {
	store, err := requestStore(c)
	if err != nil {
		return nil, err
	}
	return apphr.NewLeaveService(store, f.events, logger.GetGinLogger(c), f.leaveOpts...), nil
}

// Reference returns the reference data service for the request's tenant
func (f *ServiceFactory) Reference(c *gin.Context) (*apphr.ReferenceService, error) {
	store, err := requestStore(c)
	if err != nil {
		return nil, err
	}
	return apphr.NewReferenceService(store, logger.GetGinLogger(c)), nil
}

// Strategy returns the customization strategy selected for this instance
func (f *ServiceFactory) Strategy() tenancy.CustomizationStrategy {
	return f.selector.SelectStrategy(f.config)
}

func requestStore(c *gin.Context) (hr.Store, error) {
	store := middleware.GetTenantStore(c)
	if store == nil {
		return nil, shared.ErrNoTenantContext
	}
	return store, nil
}
