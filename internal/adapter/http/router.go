package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/recyclo/cashbook/internal/adapter/http/handler"
	"github.com/recyclo/cashbook/internal/adapter/http/middleware"
	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/infrastructure/auth"
	"github.com/recyclo/cashbook/internal/infrastructure/metrics"
	"github.com/recyclo/cashbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler     *handler.EntryHandler
	TransferHandler  *handler.TransferHandler
	ReportHandler    *handler.ReportHandler
	InventoryHandler *handler.InventoryHandler
	AuthHandler      *handler.AuthHandler
	HealthHandler    *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics

	JWTManager  *auth.JWTManager
	AuthEnabled bool

	AllowedOrigins []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Login stays outside the auth fence.
	r.Post("/api/v1/auth/login", cfg.AuthHandler.Login)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Get("/auth/me", cfg.AuthHandler.Me)

		// Cashbook entries
		r.Route("/cashbook", func(r chi.Router) {
			r.Get("/", cfg.EntryHandler.List)
			r.With(requireRole(cfg, domain.RoleManager)).Post("/", cfg.EntryHandler.Create)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.With(requireRole(cfg, domain.RoleAdmin)).Put("/{id}", cfg.EntryHandler.Update)
			r.With(requireRole(cfg, domain.RoleAdmin)).Delete("/{id}", cfg.EntryHandler.Delete)
		})

		// Channel transfers
		r.With(requireRole(cfg, domain.RoleManager)).Post("/transfers", cfg.TransferHandler.Create)

		// Read-side reports
		r.Get("/balances", cfg.ReportHandler.Balances)
		r.Get("/daily", cfg.ReportHandler.Daily)
		r.Get("/summary", cfg.ReportHandler.Summary)
		r.Get("/months", cfg.ReportHandler.Months)
		r.Route("/reports", func(r chi.Router) {
			r.Get("/cashbook", cfg.ReportHandler.Cashbook)
			r.Get("/inventory", cfg.ReportHandler.Inventory)
		})

		// Recyclables inventory
		r.Route("/inventory", func(r chi.Router) {
			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", cfg.InventoryHandler.ListPurchases)
				r.With(requireRole(cfg, domain.RoleInventory)).Post("/", cfg.InventoryHandler.CreatePurchase)
				r.Get("/summary", cfg.InventoryHandler.PurchaseSummary)
				r.Get("/monthly", cfg.InventoryHandler.PurchaseMonthlyTotals)
				r.Get("/overall", cfg.InventoryHandler.PurchaseOverallTotals)
				r.With(requireRole(cfg, domain.RoleAdmin)).Put("/{id}/decision", cfg.InventoryHandler.DecidePurchase)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", cfg.InventoryHandler.ListSales)
				r.With(requireRole(cfg, domain.RoleInventory)).Post("/", cfg.InventoryHandler.CreateSale)
				r.Get("/summary", cfg.InventoryHandler.SaleSummary)
				r.Get("/monthly", cfg.InventoryHandler.SaleMonthlyTotals)
				r.Get("/overall", cfg.InventoryHandler.SaleOverallTotals)
			})
		})
	})

	return r
}

// requireRole enforces a role only when authentication is on; with auth
// disabled every caller is trusted.
func requireRole(cfg RouterConfig, role domain.Role) func(http.Handler) http.Handler {
	if !cfg.AuthEnabled {
		return passthrough
	}

	return middleware.RequireRole(role)
}

func passthrough(next http.Handler) http.Handler {
	return next
}
