package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/duepay/payables/internal/adapter/http/handler"
	"github.com/duepay/payables/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SupplierHandler *handler.SupplierHandler
	AccountHandler  *handler.AccountHandler
	ScheduleHandler *handler.ScheduleHandler
	PaymentHandler  *handler.PaymentHandler
	HealthHandler   *handler.HealthHandler
	Logging         *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router. Everything under /api/v1 is tenant
// scoped: the tenant middleware rejects requests without an X-Tenant-ID
// header before any handler runs.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Tenant)

		// Suppliers
		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", cfg.SupplierHandler.Create)
			r.Get("/", cfg.SupplierHandler.List)
			r.Get("/{id}", cfg.SupplierHandler.Get)
			r.Put("/{id}", cfg.SupplierHandler.Update)
		})

		// Recurring accounts and their settlements
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Post("/{id}/payments", cfg.PaymentHandler.Record)
		})

		// Derived occurrence schedule
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", cfg.ScheduleHandler.List)
			r.Get("/grouped", cfg.ScheduleHandler.Grouped)
		})

		// Settled occurrence history
		r.Get("/payments", cfg.PaymentHandler.History)
	})

	return r
}
