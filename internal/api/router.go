// Package api wires the HTTP surface: middleware, handlers and routes.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hybrid-sim/internal/api/handlers"
	"hybrid-sim/internal/api/middleware"
	"hybrid-sim/internal/data"
	"hybrid-sim/internal/hybrid"
	"hybrid-sim/internal/logger"
)

// Options configures the router.
type Options struct {
	Runner         *hybrid.Runner
	Store          *data.ResultStore[*hybrid.Result]
	PresetDir      string
	AllowedOrigins []string
	// Gatherer backs /metrics. nil serves the default registry.
	Gatherer prometheus.Gatherer
	Log      logger.Logger
}

func NewRouter(opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	if opts.Store == nil {
		opts.Store = data.NewResultStore[*hybrid.Result](0, 0)
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	router := gin.New()
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	simulationHandler := handlers.NewSimulationHandler(opts.Runner, opts.Store, log)
	technologyHandler := handlers.NewTechnologyHandler()
	presetHandler := handlers.NewPresetHandler(opts.PresetDir, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	metricsHandler := promhttp.Handler()
	if opts.Gatherer != nil {
		metricsHandler = promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})
	}
	router.GET("/metrics", gin.WrapH(metricsHandler))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulations", simulationHandler.RunSimulation)
		v1.POST("/simulations/compare", simulationHandler.CompareSimulations)
		v1.GET("/simulations/:id", simulationHandler.GetSimulation)
		v1.GET("/simulations/:id/series", simulationHandler.GetSeries)

		v1.GET("/technologies", technologyHandler.ListTechnologies)
		v1.GET("/presets", presetHandler.ListPresets)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
