package handler

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "healthguide-backend"
	serviceVersion = "1.0.0"
)

// Pinger reports whether a dependency is reachable
type Pinger func(ctx context.Context) error

// SystemHandler implements the health check and the OpenAPI document endpoints
type SystemHandler struct {
	checks map[string]Pinger
	doc    *openapi3.T
	logger *zap.Logger
}

// NewSystemHandler creates a new SystemHandler. checks maps a dependency name
// ("database", "cache") to its ping.
func NewSystemHandler(checks map[string]Pinger, doc *openapi3.T, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		checks: checks,
		doc:    doc,
		logger: logger,
	}
}

// GetHealth implements the health check endpoint
func (h *SystemHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	response := gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	}
	status := http.StatusOK

	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			h.logger.Error("health check failed: dependency unreachable",
				zap.String("dependency", name),
				zap.Error(err),
			)
			response[name] = "disconnected"
			response["status"] = "unhealthy"
			response["error"] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		response[name] = "connected"
	}

	c.JSON(status, response)
}

// GetApiV1OpenapiJson serves the OpenAPI document
func (h *SystemHandler) GetApiV1OpenapiJson(c *gin.Context) {
	c.JSON(http.StatusOK, h.doc)
}
