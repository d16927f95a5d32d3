package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/recyclo/cashbook/internal/adapter/http/handler"
	apimiddleware "github.com/recyclo/cashbook/internal/adapter/http/middleware"
	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/infrastructure/auth"
	"github.com/recyclo/cashbook/internal/usecase"
	"github.com/recyclo/cashbook/internal/usecase/mocks"
)

func newRouterConfig(overrides ...func(cfg *RouterConfig)) RouterConfig {
	entries := mocks.NewMockEntryRepository()
	audit := mocks.NewMockAuditRepository()
	purchases := mocks.NewMockPurchaseRepository()
	sales := mocks.NewMockSaleRepository()
	users := mocks.NewMockUserRepository()
	idGen := mocks.NewMockIDGenerator()

	availability := usecase.NewAvailabilityService(entries)
	entryUC := usecase.NewEntryService(entries, audit, availability, idGen)
	transferUC := usecase.NewTransferService(mocks.NewMockTransactionManager(), entries, idGen, nil)
	reportUC := usecase.NewReportService(entries, purchases, sales)
	inventoryUC := usecase.NewInventoryService(purchases, sales, entries, audit, idGen)
	userUC := usecase.NewUserService(users, mocks.NewMockTokenIssuer(), idGen)

	cfg := RouterConfig{
		EntryHandler:     handler.NewEntryHandler(entryUC, nil),
		TransferHandler:  handler.NewTransferHandler(transferUC, nil),
		ReportHandler:    handler.NewReportHandler(reportUC),
		InventoryHandler: handler.NewInventoryHandler(inventoryUC, nil),
		AuthHandler:      handler.NewAuthHandler(userUC, nil),
		HealthHandler:    handler.NewHealthHandler(nil, nil),
	}

	for _, override := range overrides {
		override(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_AuthFenceRejectsAnonymousRequests(t *testing.T) {
	manager := auth.NewJWTManager("router-secret", time.Minute)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.JWTManager = manager
		cfg.AuthEnabled = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cashbook", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected anonymous request to be rejected, got %d", rec.Code)
	}
}

func TestNewRouter_AuthFenceAdmitsValidToken(t *testing.T) {
	manager := auth.NewJWTManager("router-secret", time.Minute)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.JWTManager = manager
		cfg.AuthEnabled = true
	}))

	token, err := manager.Generate(&domain.User{ID: "u-1", Username: "achola", Role: domain.RoleViewer})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cashbook", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected authorized request to pass, got %d", rec.Code)
	}
}

func TestNewRouter_ViewerCannotDeleteEntries(t *testing.T) {
	manager := auth.NewJWTManager("router-secret", time.Minute)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.JWTManager = manager
		cfg.AuthEnabled = true
	}))

	token, err := manager.Generate(&domain.User{ID: "u-2", Username: "viewer", Role: domain.RoleViewer})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cashbook/e-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected viewer delete to be forbidden, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	checked := false
	store := mocks.NewMockIdempotencyStore()
	store.CheckAndSetFunc = func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
		checked = true
		return false, nil, nil
	}

	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cashbook", nil)
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "router-key")
	router.ServeHTTP(rec, req)

	if !checked {
		t.Fatalf("expected idempotency store to be consulted")
	}
}
