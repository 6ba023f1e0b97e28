package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	rulesetVersion string
}

// NewHealthHandler creates a HealthHandler reporting the loaded rule
// version.
func NewHealthHandler(rulesetVersion string) *HealthHandler {
	return &HealthHandler{rulesetVersion: rulesetVersion}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready once the RuleSet has
// been built; a process that failed to build one never starts serving.
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ruleset_version": h.rulesetVersion})
}
