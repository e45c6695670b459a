package handlers

import (
	"github.com/gin-gonic/gin"

	"moviecatalog/internal/logging"
	"moviecatalog/internal/middleware"
	"moviecatalog/internal/monitoring"
)

// NewRouter mounts every route on a fresh gin engine.
func NewRouter(h *Handler, tokens middleware.TokenValidator, logger logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(logger),
		monitoring.RequestMetricsMiddleware(),
	)

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/status", h.Status)

		api.GET("/movies", h.ListMovies)
		api.GET("/movie_details/:id", h.GetMovie)
		api.POST("/add_movie", middleware.AuthMiddleware(tokens), h.AddMovie)
		api.GET("/upload", h.UploadCSV)
		api.POST("/upload", h.UploadCSV)

		authGroup := api.Group("/authenticate")
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)

		monitor := api.Group("/monitor")
		monitor.GET("/snapshot", h.MonitorSnapshot)
		monitor.GET("/report", h.MonitorReport)
	}

	return router
}
