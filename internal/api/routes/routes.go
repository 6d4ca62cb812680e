package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobgate/internal/aggregator"
	"jobgate/internal/api/handlers"
	"jobgate/internal/api/middleware"
	"jobgate/internal/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, agg *aggregator.Aggregator) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Search requests wait on several upstreams; give them more headroom
	// than the metadata endpoints.
	e.Use(middleware.SelectiveTimeout(cfg.Server.ReadTimeout, 2*time.Minute, "/api/jobs"))

	api := e.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)
		api.GET("/sites", handlers.SitesHandler)

		jobs := handlers.JobsHandler(agg)
		api.GET("/jobs", jobs)
		api.POST("/jobs", jobs)
	}

	// Service info root
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"service": "jobgate",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/health",
				"GET /api/sites",
				"GET /api/jobs",
				"POST /api/jobs",
			},
		})
	})
}
