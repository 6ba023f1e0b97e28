package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"itemize/internal/handler"
	"itemize/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *zap.Logger,
	allowedOrigins []string,
	extractionH *handler.ExtractionHandler,
	reviewH *handler.ReviewHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	extractions := v1.Group("/extractions")
	extractions.POST("", extractionH.Create)
	extractions.GET("/:id", extractionH.GetByID)
	extractions.GET("/:id/summary", extractionH.Summary)
	extractions.GET("/:id/export", extractionH.Export)

	// Reviewer actions on individual candidates
	extractions.POST("/:id/candidates/:index/validate", reviewH.Validate)
	extractions.POST("/:id/candidates/:index/mark", reviewH.Mark)
	extractions.PATCH("/:id/candidates/:index", reviewH.Edit)

	// Bulk reviewer actions
	extractions.POST("/:id/validate-all", reviewH.ValidateAll)
	extractions.POST("/:id/mark-all", reviewH.MarkAll)
	extractions.POST("/:id/reset", reviewH.Reset)

	return r
}
