package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mehdib/finsms/internal/adapter/http/handler"
	"github.com/mehdib/finsms/internal/adapter/http/middleware"
	"github.com/mehdib/finsms/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	IngestHandler      *handler.IngestHandler
	TransactionHandler *handler.TransactionHandler
	BillHandler        *handler.BillHandler
	ForecastHandler    *handler.ForecastHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Ingestion
		r.Group(func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Wrap)
			}
			r.Post("/ingest", cfg.IngestHandler.Ingest)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/{id}", cfg.TransactionHandler.Get)
		})

		// Bills
		r.Route("/bills", func(r chi.Router) {
			r.Post("/sweep", cfg.BillHandler.Sweep)
			r.Get("/{id}", cfg.BillHandler.Get)
			r.Patch("/{id}", cfg.BillHandler.Update)
			r.Delete("/{id}", cfg.BillHandler.Delete)
		})

		// Per-account listings
		r.Route("/accounts/{id}", func(r chi.Router) {
			r.Get("/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/bills", cfg.BillHandler.ListByAccount)
			r.Get("/bills/stats", cfg.BillHandler.Stats)
		})

		// Forecasting
		r.Post("/forecast/cashflow", cfg.ForecastHandler.CashFlow)
	})

	return r
}
