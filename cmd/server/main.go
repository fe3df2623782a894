package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/duepay/payables/internal/adapter/http"
	"github.com/duepay/payables/internal/adapter/http/handler"
	"github.com/duepay/payables/internal/adapter/http/middleware"
	postgresRepo "github.com/duepay/payables/internal/adapter/repository/postgres"
	redisRepo "github.com/duepay/payables/internal/adapter/repository/redis"
	"github.com/duepay/payables/internal/infrastructure/config"
	"github.com/duepay/payables/internal/infrastructure/logger"
	"github.com/duepay/payables/internal/infrastructure/metrics"
	"github.com/duepay/payables/internal/infrastructure/postgres"
	"github.com/duepay/payables/internal/infrastructure/redis"
	"github.com/duepay/payables/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Redis is optional: without it the schedule is expanded on every request.
	var (
		redisClient *redislib.Client
		cache       usecase.Cache
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		cache = redisRepo.NewCache(redisClient)
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("redis disabled, schedule cache is off")
	}

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	supplierRepo := postgresRepo.NewSupplierRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Use cases
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, auditRepo, idGen, m)
	accountUC := usecase.NewAccountUseCase(accountRepo, supplierRepo, auditRepo, idGen, cache, m)
	scheduleUC := usecase.NewScheduleUseCase(accountRepo, paymentRepo, cache, cfg.ScheduleCacheTTL, m, log)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, paymentRepo, auditRepo, idGen, retrier, cache, m)

	// Handlers
	supplierHandler := handler.NewSupplierHandler(supplierUC)
	accountHandler := handler.NewAccountHandler(accountUC)
	scheduleHandler := handler.NewScheduleHandler(scheduleUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SupplierHandler: supplierHandler,
		AccountHandler:  accountHandler,
		ScheduleHandler: scheduleHandler,
		PaymentHandler:  paymentHandler,
		HealthHandler:   healthHandler,
		Logging:         middleware.NewLoggingMiddleware(log),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
