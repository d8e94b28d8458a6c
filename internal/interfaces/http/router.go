// Package http wires the sketch API: chi routes, middleware and the server
// lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molsketch/internal/interfaces/http/handlers"
	"github.com/turtacn/molsketch/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware dependencies of the
// route tree.  Nil handlers leave their routes unmounted.
type RouterConfig struct {
	// Handlers
	SessionHandler    *handlers.SessionHandler
	PredictionHandler *handlers.PredictionHandler
	NotationHandler   *handlers.NotationHandler
	HealthHandler     *handlers.HealthHandler

	// Middleware
	CORS        *middleware.CORSConfig
	Logging     middleware.LoggingConfig
	RateLimiter middleware.RateLimiter
	MaxBodySize int64

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter builds the route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	r.Use(chimw.Recoverer)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}

	// --- Probes and metrics ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/healthz/detail", cfg.HealthHandler.Detailed)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		if cfg.MaxBodySize > 0 {
			api.Use(chimw.RequestSize(cfg.MaxBodySize))
		}
		limited := func(h http.HandlerFunc) http.Handler {
			if cfg.RateLimiter == nil {
				return h
			}
			return middleware.RateLimit(cfg.RateLimiter, middleware.PathPrefixKey(middleware.ClientIPKey))(h)
		}

		registerSessionRoutes(api, cfg.SessionHandler, limited)
		registerPredictionRoutes(api, cfg.PredictionHandler, limited)
		if cfg.NotationHandler != nil {
			api.Post("/notation", cfg.NotationHandler.Notation)
		}
	})

	return r
}

// registerSessionRoutes mounts the editing session endpoints under
// /sessions.  Only session creation is rate limited.
func registerSessionRoutes(r chi.Router, h *handlers.SessionHandler, limited func(http.HandlerFunc) http.Handler) {
	if h == nil {
		return
	}
	r.Route("/sessions", func(sr chi.Router) {
		sr.Method(http.MethodPost, "/", limited(h.Create))

		sr.Route("/{id}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Delete("/", h.Delete)
			item.Put("/tool", h.SelectTool)
			item.Post("/pointer", h.Pointer)
			item.Post("/undo", h.Undo)
			item.Post("/redo", h.Redo)
			item.Post("/clear", h.Clear)
			item.Get("/document", h.Download)
			item.Put("/document", h.Import)
			item.Get("/events", h.Events)
		})
	})
}

func registerPredictionRoutes(r chi.Router, h *handlers.PredictionHandler, limited func(http.HandlerFunc) http.Handler) {
	if h == nil {
		return
	}
	r.Method(http.MethodPost, "/predict", limited(h.Predict))
	r.Get("/examples", h.Examples)
}

//Personal.AI order the ending
