package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the engine with recovery, request logging and CORS applied.
func NewRouter(handler *Handler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(handler.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(router, handler)
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)

		api.GET("/parcels", handler.GetParcels)
		api.POST("/parcels/search", handler.SearchParcels)
		api.GET("/parcels/:id", handler.GetParcel)
		api.GET("/map/parcels", handler.GetParcelMap)
		api.GET("/map/regions", handler.GetRegions)

		api.POST("/analysis", handler.Analyze)
		api.GET("/insights", handler.GetInsights)

		api.GET("/saved-searches", handler.ListSavedSearches)
		api.POST("/saved-searches", handler.CreateSavedSearch)
		api.DELETE("/saved-searches/:id", handler.DeleteSavedSearch)

		api.GET("/markets", handler.GetMarkets)
		api.GET("/zoning", handler.GetZoning)
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("Request failed")
			return
		}
		entry.Debug("Request handled")
	}
}
