package rest

import (
	"net/http"

	"social-backend/interfaces/http/rest/handlers"
	"social-backend/interfaces/http/rest/middleware"
	pkgerrors "social-backend/pkg/errors"
	"social-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	feedHandler   *handlers.FeedHandler
	healthHandler *handlers.HealthHandler
	authenticator *middleware.Authenticator
	metrics       middleware.MetricsFlusher
	tracer        *observability.Tracer
	errors        *pkgerrors.ErrorHandler
	enableCORS    bool
	logger        *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	feedHandler *handlers.FeedHandler,
	healthHandler *handlers.HealthHandler,
	authenticator *middleware.Authenticator,
	metrics middleware.MetricsFlusher,
	tracer *observability.Tracer,
	errorHandler *pkgerrors.ErrorHandler,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		feedHandler:   feedHandler,
		healthHandler: healthHandler,
		authenticator: authenticator,
		metrics:       metrics,
		tracer:        tracer,
		errors:        errorHandler,
		enableCORS:    enableCORS,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errors.Middleware)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Trace(rt.tracer))
	if rt.metrics != nil {
		router.Use(middleware.FlushMetrics(rt.metrics))
	}

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthHandler.Health)
	router.Get("/ready", rt.healthHandler.Ready)

	router.Group(func(r chi.Router) {
		r.Use(rt.authenticator.Middleware)
		r.Get("/feed", rt.feedHandler.GetFeed)
		r.Get("/api/v1/feed", rt.feedHandler.GetFeed)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusNotFound, "Not found")
	})

	return router
}
