package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpAdapter "github.com/mehdib/finsms/internal/adapter/http"
	"github.com/mehdib/finsms/internal/adapter/http/handler"
	"github.com/mehdib/finsms/internal/adapter/http/middleware"
	postgresRepo "github.com/mehdib/finsms/internal/adapter/repository/postgres"
	redisRepo "github.com/mehdib/finsms/internal/adapter/repository/redis"
	"github.com/mehdib/finsms/internal/infrastructure/config"
	"github.com/mehdib/finsms/internal/infrastructure/logger"
	"github.com/mehdib/finsms/internal/infrastructure/metrics"
	"github.com/mehdib/finsms/internal/infrastructure/postgres"
	"github.com/mehdib/finsms/internal/infrastructure/redis"
	"github.com/mehdib/finsms/internal/nlp"
	"github.com/mehdib/finsms/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "finsms-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Load the extraction model. An empty path selects the built-in
	// pattern set.
	var model *nlp.Model
	if cfg.NERModelPath != "" {
		model, err = nlp.LoadModel(cfg.NERModelPath)
	} else {
		model, err = nlp.NewModel(nlp.DefaultPatterns())
	}
	if err != nil {
		return fmt.Errorf("load extraction model: %w", err)
	}

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	billRepo := postgresRepo.NewBillRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	extractor := nlp.NewExtractor(model)
	ingestUC := usecase.NewIngestUseCase(txManager, txnRepo, billRepo, extractor, idGen, cache)
	txnUC := usecase.NewTransactionUseCase(txManager, txnRepo, idGen)
	billUC := usecase.NewBillUseCase(billRepo, cache, retrier, cfg.StatsCacheTTL)

	// Handlers
	ingestHandler := handler.NewIngestHandler(ingestUC, m)
	txnHandler := handler.NewTransactionHandler(txnUC)
	billHandler := handler.NewBillHandler(billUC, m)
	forecastHandler := handler.NewForecastHandler()
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(cfg.IngestRateLimit, cfg.IngestRateBurst)
	go limiterCleanupLoop(ctx, rateLimiter)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		IngestHandler:      ingestHandler,
		TransactionHandler: txnHandler,
		BillHandler:        billHandler,
		ForecastHandler:    forecastHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Logger:             log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	if cfg.SweepInterval > 0 {
		go sweepLoop(ctx, billUC, m, cfg.SweepInterval, log)
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// limiterCleanupLoop evicts idle per-client limiters so the map stays
// bounded under churny traffic.
func limiterCleanupLoop(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup(time.Hour)
		}
	}
}

// sweepLoop periodically marks pending bills past their due date as overdue.
func sweepLoop(ctx context.Context, billUC *usecase.BillUseCase, m *metrics.Metrics, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updated, err := billUC.SweepOverdue(ctx)
			if err != nil {
				log.Error().Err(err).Msg("overdue sweep failed")
				continue
			}
			if updated > 0 {
				m.BillsSweptOverdue.Add(float64(updated))
				log.Info().Int64("updated", updated).Msg("marked bills overdue")
			}
		}
	}
}
