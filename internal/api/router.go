package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"climate-explorer/internal/api/handlers"
	"climate-explorer/internal/api/middleware"
	"climate-explorer/internal/api/models"
	"climate-explorer/internal/data"
	"climate-explorer/internal/render"
)

// Options configures the HTTP router.
type Options struct {
	AllowedOrigins []string
	Renderer       *render.Renderer
	Logger         *slog.Logger
}

// NewRouter wires middleware and routes over the repository held by store.
func NewRouter(store *data.Store, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))

	stationHandler := handlers.NewStationHandler(store)
	temperatureHandler := handlers.NewTemperatureHandler(store)
	analyticsHandler := handlers.NewAnalyticsHandler(store)
	chartHandler := handlers.NewChartHandler(store, opts.Renderer, logger)

	router.GET("/health", stationHandler.Health)

	api := router.Group("/api")
	{
		api.GET("/stations", stationHandler.ListStations)
		api.POST("/temperature-data", temperatureHandler.GetTemperatureData)
		api.POST("/analytics", analyticsHandler.GetAnalytics)
		api.POST("/chart", chartHandler.GetChart)
		api.POST("/chart.png", chartHandler.GetChartPNG)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError("NOT_FOUND", "Not found"))
	})
	return router
}
