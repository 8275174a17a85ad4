package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/mehdib/finsms/internal/adapter/http"
	"github.com/mehdib/finsms/internal/adapter/http/handler"
	postgresrepo "github.com/mehdib/finsms/internal/adapter/repository/postgres"
	redisrepo "github.com/mehdib/finsms/internal/adapter/repository/redis"
	infraredis "github.com/mehdib/finsms/internal/infrastructure/redis"
	"github.com/mehdib/finsms/internal/nlp"
	"github.com/mehdib/finsms/internal/usecase"
	"github.com/mehdib/finsms/tests/testutil"
)

// testEnv wires the full HTTP stack against a live database and Redis.
type testEnv struct {
	db     *testutil.TestDB
	redis  *redis.Client
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	t.Cleanup(db.Cleanup)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := db.Pool
	txManager := postgresrepo.NewTxManager(pool)
	txnRepo := postgresrepo.NewTransactionRepository(pool)
	billRepo := postgresrepo.NewBillRepository(pool)
	idGen := postgresrepo.NewULIDGenerator()
	retrier := postgresrepo.NewRetrier(zerolog.Nop())
	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	model, err := nlp.NewModel(nlp.DefaultPatterns())
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	extractor := nlp.NewExtractor(model)

	ingestUC := usecase.NewIngestUseCase(txManager, txnRepo, billRepo, extractor, idGen, cache)
	txnUC := usecase.NewTransactionUseCase(txManager, txnRepo, idGen)
	billUC := usecase.NewBillUseCase(billRepo, cache, retrier, time.Minute)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		IngestHandler:      handler.NewIngestHandler(ingestUC, nil),
		TransactionHandler: handler.NewTransactionHandler(txnUC),
		BillHandler:        handler.NewBillHandler(billUC, nil),
		ForecastHandler:    handler.NewForecastHandler(),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     time.Minute,
		Logger:             zerolog.Nop(),
	})

	return &testEnv{db: db, redis: redisClient, router: router}
}
