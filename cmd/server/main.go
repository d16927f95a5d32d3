package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpAdapter "github.com/recyclo/cashbook/internal/adapter/http"
	"github.com/recyclo/cashbook/internal/adapter/http/handler"
	"github.com/recyclo/cashbook/internal/adapter/http/middleware"
	postgresRepo "github.com/recyclo/cashbook/internal/adapter/repository/postgres"
	redisRepo "github.com/recyclo/cashbook/internal/adapter/repository/redis"
	"github.com/recyclo/cashbook/internal/infrastructure/auth"
	"github.com/recyclo/cashbook/internal/infrastructure/config"
	"github.com/recyclo/cashbook/internal/infrastructure/logger"
	"github.com/recyclo/cashbook/internal/infrastructure/metrics"
	"github.com/recyclo/cashbook/internal/infrastructure/postgres"
	"github.com/recyclo/cashbook/internal/infrastructure/redis"
	"github.com/recyclo/cashbook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Redis is optional; without it mutating requests simply lose
	// idempotency-key replay.
	var redisClient *goredis.Client
	var idempotencyStore usecase.IdempotencyStore
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		log.Info().Msg("connected to redis")
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	purchaseRepo := postgresRepo.NewPurchaseRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Authentication is optional; without a secret every caller is
	// trusted and actor-gated rules are skipped.
	var jwtManager *auth.JWTManager
	var tokenIssuer usecase.TokenIssuer
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		tokenIssuer = jwtManager
	}

	// Initialize use cases
	availability := usecase.NewAvailabilityService(entryRepo)
	entryUC := usecase.NewEntryService(entryRepo, auditRepo, availability, idGen)
	transferUC := usecase.NewTransferService(txManager, entryRepo, idGen, retrier)
	reportUC := usecase.NewReportService(entryRepo, purchaseRepo, saleRepo)
	inventoryUC := usecase.NewInventoryService(purchaseRepo, saleRepo, entryRepo, auditRepo, idGen)
	userUC := usecase.NewUserService(userRepo, tokenIssuer, idGen)

	seeds := []usecase.SeedUser{
		{Username: cfg.SeedAdminUsername, Password: cfg.SeedAdminPassword, Role: "ADMIN"},
		{Username: cfg.SeedManagerUsername, Password: cfg.SeedManagerPassword, Role: "MANAGER"},
	}
	if err := userUC.SeedInitialUsers(ctx, seeds); err != nil {
		log.Fatal().Err(err).Msg("failed to seed users")
	}

	m := metrics.New()

	rateLimiter := middleware.NewRateLimiter(50, 100, m)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	// Initialize handlers
	entryHandler := handler.NewEntryHandler(entryUC, m)
	transferHandler := handler.NewTransferHandler(transferUC, m)
	reportHandler := handler.NewReportHandler(reportUC)
	inventoryHandler := handler.NewInventoryHandler(inventoryUC, m)
	authHandler := handler.NewAuthHandler(userUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:     entryHandler,
		TransferHandler:  transferHandler,
		ReportHandler:    reportHandler,
		InventoryHandler: inventoryHandler,
		AuthHandler:      authHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
		Metrics:          m,
		JWTManager:       jwtManager,
		AuthEnabled:      cfg.AuthEnabled && jwtManager != nil,
		AllowedOrigins:   cfg.AllowedOrigins,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
