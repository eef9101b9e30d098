package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geolife-analytics/trajectory-backend-go/internal/config"
	"github.com/geolife-analytics/trajectory-backend-go/internal/handler"
	"github.com/geolife-analytics/trajectory-backend-go/internal/middleware"
	"github.com/geolife-analytics/trajectory-backend-go/internal/service"
)

// SetupRouter wires the results API.
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trajectory Analytics API is running",
		})
	})

	reportHandler := handler.NewReportHandler(service.NewReportService(db))
	batchHandler := handler.NewBatchHandler(service.NewBatchService(cfg, db))

	api := r.Group("/api/v1")
	{
		reports := api.Group("/reports")
		{
			reports.GET("/summary", reportHandler.GetSummary)
			reports.GET("/daily", reportHandler.GetDailyAggregates)
			reports.GET("/activity/:granularity", reportHandler.GetActivity)
			reports.GET("/northernmost", reportHandler.GetNorthernmost)
			reports.GET("/correlation", reportHandler.GetCorrelation)
			reports.GET("/longest-days", reportHandler.GetLongestDays)
		}

		batch := api.Group("/batch", middleware.Auth(cfg.JWTSecret))
		{
			batch.POST("/run", batchHandler.Run)
		}
	}

	return r
}
