package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hrapi/backend/internal/infrastructure/logger"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger checks that a database connection is alive
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	directory Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. directory may be nil, in
// which case the database health check always reports healthy.
func NewSystemHandler(name, version string, directory Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		directory: directory,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health reports that the process is serving requests
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, dto.HealthResponse{
		Status:    "healthy",
		Component: "api",
		Timestamp: time.Now().UTC(),
	})
}

// DatabaseHealth pings the tenant directory database
func (h *SystemHandler) DatabaseHealth(c *gin.Context) {
	if h.directory != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.directory.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Directory database unreachable", zap.Error(err))
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Database is unreachable")
			return
		}
	}
	h.Success(c, dto.HealthResponse{
		Status:    "healthy",
		Component: "database",
		Timestamp: time.Now().UTC(),
	})
}

// GetSystemInfo returns the service name, version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
