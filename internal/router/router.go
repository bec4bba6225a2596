package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "cablecheck/docs"
	"cablecheck/internal/config"
	"cablecheck/internal/handler"
	"cablecheck/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	designH *handler.DesignHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	if cfg.Auth.Enabled() {
		v1.Use(middleware.Auth(&cfg.Auth))
	}

	designs := v1.Group("/designs")
	designs.POST("/validate", designH.Validate)
	designs.POST("/validate/export", designH.Export)

	v1.GET("/audits", designH.RecentAudits)

	return r
}
