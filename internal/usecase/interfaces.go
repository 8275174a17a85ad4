package usecase

import (
	"context"
	"time"

	"github.com/mehdib/finsms/internal/domain"
)

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, uow UnitOfWork, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// BillRepository defines data access for bills.
type BillRepository interface {
	Create(ctx context.Context, uow UnitOfWork, bill *domain.Bill) error
	GetByID(ctx context.Context, id string) (*domain.Bill, error)
	ListByAccount(ctx context.Context, accountID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error)
	Update(ctx context.Context, bill *domain.Bill) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, accountID string) (*domain.BillStats, error)
	// MarkOverdue returns the owning account id of every bill it
	// transitioned, one entry per bill.
	MarkOverdue(ctx context.Context, now time.Time) ([]string, error)
}

// UnitOfWork is an atomic group of persistence operations that commit or
// roll back together.
type UnitOfWork interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles unit-of-work lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// MessageExtractor runs entity recognition over raw message text. Assumed
// synchronous and side-effect-free.
type MessageExtractor interface {
	Extract(text string) domain.ParsedMessage
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient persistence failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
