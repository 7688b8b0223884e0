package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/seas-api/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(analysisUC *usecase.SeaAnalysisUseCase) *gin.Engine {

	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable.
	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(analysisUC)

	// API v1 routes.
	v1 := router.Group("/v1")
	seas := v1.Group("/seas")
	seas.GET("", handler.ListSeas)
	seas.POST("", handler.CreateSea)
	seas.PUT("/dataset", handler.ReplaceDataset)

	// Analysis.
	seas.GET("/deepest", handler.GetDeepest)
	seas.GET("/least-salty", handler.GetLeastSalty)
	seas.GET("/average-depth", handler.GetAverageDepth)
	seas.GET("/by-salinity", handler.GetBySalinity)
	seas.GET("/summary", handler.GetSummary)
	seas.POST("/sort", handler.SortByDepth)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}
