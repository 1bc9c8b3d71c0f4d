package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apptenancy "github.com/hrapi/backend/internal/application/tenancy"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/auth"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
	"github.com/hrapi/backend/internal/interfaces/http/middleware"
)

// TenantLookup finds the active tenant a request resolved to
type TenantLookup interface {
	TenantByID(ctx context.Context, tenantID string) (*tenancy.Tenant, error)
}

// TokenRevoker blacklists access tokens
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// TenantHandler handles the tenant directory administration endpoints
// and the current-tenant endpoint
type TenantHandler struct {
	BaseHandler
	provisioning *apptenancy.ProvisioningService
	lookup       TenantLookup
	revoker      TokenRevoker
	services     *ServiceFactory
}

// NewTenantHandler creates a new TenantHandler. revoker may be nil when
// authentication is disabled.
func NewTenantHandler(
	provisioning *apptenancy.ProvisioningService,
	lookup TenantLookup,
	revoker TokenRevoker,
	services *ServiceFactory,
) *TenantHandler {
	return &TenantHandler{
		provisioning: provisioning,
		lookup:       lookup,
		revoker:      revoker,
		services:     services,
	}
}

// List returns every tenant, active or not
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.provisioning.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenants)
}

// Get returns one tenant
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.provisioning.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Create registers a tenant and, unless told otherwise, provisions its store
func (h *TenantHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	result, err := h.provisioning.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Provision creates the schema in a tenant's store and seeds it when empty
func (h *TenantHandler) Provision(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.provisioning.Provision(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Activate marks a tenant active
func (h *TenantHandler) Activate(c *gin.Context) {
	h.mutate(c, h.provisioning.Activate)
}

// Deactivate marks a tenant inactive
func (h *TenantHandler) Deactivate(c *gin.Context) {
	h.mutate(c, h.provisioning.Deactivate)
}

// RotateConnection replaces a tenant's connection descriptor
func (h *TenantHandler) RotateConnection(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RotateConnectionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	t, err := h.provisioning.RotateConnection(c.Request.Context(), id, req.ConnectionString)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// UpdateSettings replaces a tenant's settings and contact details
func (h *TenantHandler) UpdateSettings(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTenantSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	t, err := h.provisioning.UpdateSettings(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// RevokeToken blacklists an access token until it expires
func (h *TenantHandler) RevokeToken(c *gin.Context) {
	if h.revoker == nil {
		h.Error(c, http.StatusNotFound, dto.ErrCodeRouteMissing, "Token revocation is not enabled")
		return
	}
	var req dto.RevokeTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.revoker.Revoke(c.Request.Context(), req.Token); err != nil {
		if auth.IsTokenError(err) {
			h.BadRequest(c, "Token is not valid")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Current describes the tenant the request resolved to and the
// customization strategy in effect
func (h *TenantHandler) Current(c *gin.Context) {
	t, err := h.lookup.TenantByID(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if t == nil {
		h.NotFound(c, "Tenant not found")
		return
	}
	h.Success(c, dto.CurrentTenantResponse{
		Tenant:   apptenancy.ToTenantDTO(t),
		Strategy: h.services.Strategy().Name(),
	})
}

func (h *TenantHandler) mutate(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*apptenancy.TenantDTO, error)) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	t, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}
