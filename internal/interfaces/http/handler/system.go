package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/atelier/backend/internal/application/export"
	"github.com/atelier/backend/internal/infrastructure/persistence"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// StatusReporter exposes runtime status of a background component
type StatusReporter interface {
	GetStatus() map[string]any
}

// SystemHandler handles health and operational status endpoints
type SystemHandler struct {
	BaseHandler
	startTime  time.Time
	db         *persistence.Database
	redis      *redis.Client
	dispatcher StatusReporter
	exportPool StatusReporter
	exports    *export.Service
}

// NewSystemHandler creates a new SystemHandler. All dependencies except the
// database are optional and reported as absent when nil.
func NewSystemHandler(db *persistence.Database, redisClient *redis.Client, dispatcher, exportPool StatusReporter, exports *export.Service) *SystemHandler {
	return &SystemHandler{
		startTime:  time.Now(),
		db:         db,
		redis:      redisClient,
		dispatcher: dispatcher,
		exportPool: exportPool,
		exports:    exports,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Atelier Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// Health is a liveness probe
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready is a readiness probe that checks downstream dependencies
func (h *SystemHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "up"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}

	c.JSON(status, gin.H{
		"status": state,
		"checks": checks,
	})
}

// GetStats reports background worker status and export queue depth
func (h *SystemHandler) GetStats(c *gin.Context) {
	stats := gin.H{}

	if h.dispatcher != nil {
		stats["schedule_dispatcher"] = h.dispatcher.GetStatus()
	}
	if h.exportPool != nil {
		stats["export_workers"] = h.exportPool.GetStatus()
	}
	if h.exports != nil {
		queueStats, err := h.exports.Stats(c.Request.Context())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		stats["export_queue"] = queueStats
	}

	h.Success(c, stats)
}
