// Package server assembles the HTTP routes and middleware of the pipeline API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pipelinescope/core/internal/config"
	"github.com/pipelinescope/core/internal/handlers"
	"github.com/pipelinescope/core/internal/metrics"
	"github.com/pipelinescope/core/internal/server/middleware"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Registry
}

func NewRouter(cfg *config.Config, logger *zap.Logger, registry *metrics.Registry) *Router {
	return &Router{
		cfg:     cfg,
		logger:  logger,
		metrics: registry,
	}
}

// Setup configures all routes and middleware. The returned mux is also what
// the Lambda adapter wraps.
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))
	router.Use(middleware.Cors(rt.cfg.CORS))

	pipelineHandler := handlers.NewPipelineHandler(rt.logger, rt.metrics, rt.cfg.MaxBodyBytes)

	router.Get("/", handlers.RootHandler)
	router.Get("/health", handlers.HealthHandler)
	router.Post("/pipelines/parse", pipelineHandler.Parse)

	if rt.cfg.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	return router
}
