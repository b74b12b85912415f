package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/growai/backend/internal/interfaces/http/dto"
	"github.com/growai/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Version is the API version reported by /system/info
const Version = "1.0.0"

// Pinger checks a backing dependency
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name string, db Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		db:        db,
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

// HealthResponse reports service and database health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health pings the database; it answers 503 when the database is unreachable
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, dto.Response{
				Success: false,
				Data:    HealthResponse{Status: "unhealthy", Database: "unreachable"},
			})
			return
		}
	}
	h.Success(c, HealthResponse{Status: "healthy", Database: "ok"})
}

// GetSystemInfo returns the service name, version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ping answers pong
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
