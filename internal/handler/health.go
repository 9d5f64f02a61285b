package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is anything whose liveness can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is one backend reported by the detailed health check.
// A failing required dependency makes the service unhealthy.
type Dependency struct {
	Name     string
	Pinger   Pinger
	Required bool
}

type HealthHandler struct {
	version string
	deps    []Dependency
	timeout time.Duration
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

func NewHealthHandler(version string, deps ...Dependency) *HealthHandler {
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return &HealthHandler{version: version, deps: deps, timeout: 5 * time.Second}
}

// BasicHealth returns a simple health check (for load balancers)
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   h.version,
		"timestamp": time.Now(),
	})
}

// HealthCheck pings every configured backend.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now(),
		Checks:    make(map[string]HealthCheck, len(h.deps)),
	}

	for _, dep := range h.deps {
		check := h.check(ctx, dep)
		response.Checks[dep.Name] = check
		if check.Status != "healthy" && dep.Required {
			response.Status = "unhealthy"
		}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}

func (h *HealthHandler) check(ctx context.Context, dep Dependency) HealthCheck {
	if dep.Pinger == nil {
		return HealthCheck{Status: "disabled"}
	}

	start := time.Now()
	if err := dep.Pinger.Ping(ctx); err != nil {
		logger.GetLogger().Warn("Dependency ping failed",
			zap.String("dependency", dep.Name),
			zap.Error(err),
		)
		return HealthCheck{Status: "unhealthy", Message: "ping failed"}
	}
	return HealthCheck{Status: "healthy", Latency: time.Since(start).String()}
}
