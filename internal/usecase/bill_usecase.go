package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mehdib/finsms/internal/domain"
)

// BillUseCase handles bill reads and lifecycle updates. Per-account stats
// are cached; every bill write invalidates the owning account's entry.
type BillUseCase struct {
	billRepo BillRepository
	cache    Cache
	retrier  Retrier
	statsTTL time.Duration
}

// NewBillUseCase creates a new BillUseCase.
func NewBillUseCase(billRepo BillRepository, cache Cache, retrier Retrier, statsTTL time.Duration) *BillUseCase {
	return &BillUseCase{
		billRepo: billRepo,
		cache:    cache,
		retrier:  retrier,
		statsTTL: statsTTL,
	}
}

// ListBillsInput represents input for listing bills.
type ListBillsInput struct {
	AccountID string
	Status    domain.BillStatus // empty = all statuses
	Limit     int
	Offset    int
}

// ListBills lists bills for an account, due date ascending.
func (uc *BillUseCase) ListBills(ctx context.Context, input ListBillsInput) ([]*domain.Bill, error) {
	if input.Status != "" && !domain.ValidBillStatus(input.Status) {
		return nil, domain.ErrInvalidBillStatus
	}

	if input.Limit <= 0 {
		input.Limit = defaultPageSize
	}

	if input.Limit > maxPageSize {
		input.Limit = maxPageSize
	}

	return uc.billRepo.ListByAccount(ctx, input.AccountID, input.Status, input.Limit, input.Offset)
}

// GetBill retrieves a bill by ID.
func (uc *BillUseCase) GetBill(ctx context.Context, id string) (*domain.Bill, error) {
	return uc.billRepo.GetByID(ctx, id)
}

// UpdateBillInput carries partial bill updates; nil fields are left as-is.
type UpdateBillInput struct {
	ID          string
	Status      *domain.BillStatus
	DueDate     *time.Time
	IsRecurring *bool
}

// UpdateBill applies a partial update to a bill.
func (uc *BillUseCase) UpdateBill(ctx context.Context, input UpdateBillInput) (*domain.Bill, error) {
	bill, err := uc.billRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		bill.Status = *input.Status
	}

	if input.DueDate != nil {
		bill.DueDate = *input.DueDate
	}

	if input.IsRecurring != nil {
		bill.IsRecurring = *input.IsRecurring
	}

	bill.UpdatedAt = time.Now().UTC()

	if err := bill.Validate(); err != nil {
		return nil, err
	}

	if err := uc.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	uc.invalidateStats(ctx, bill.AccountID)

	return bill, nil
}

// DeleteBill removes a bill.
func (uc *BillUseCase) DeleteBill(ctx context.Context, id string) error {
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.billRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateStats(ctx, bill.AccountID)

	return nil
}

// GetStats returns aggregated bill amounts for one account, served from
// cache when fresh.
func (uc *BillUseCase) GetStats(ctx context.Context, accountID string) (*domain.BillStats, error) {
	key := statsCachePrefix + accountID

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil {
			var stats domain.BillStats
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := uc.billRepo.Stats(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			_ = uc.cache.Set(ctx, key, data, uc.statsTTL)
		}
	}

	return stats, nil
}

// SweepOverdue marks pending bills past their due date as overdue and
// returns the number of bills updated. The sweep runs outside the ingestion
// path, so transient serialization failures are retried. Every touched
// account has its cached stats invalidated.
func (uc *BillUseCase) SweepOverdue(ctx context.Context) (int64, error) {
	now := time.Now().UTC()

	var accounts []string
	op := func() error {
		var err error
		accounts, err = uc.billRepo.MarkOverdue(ctx, now)
		return err
	}

	if uc.retrier != nil {
		if err := uc.retrier.Retry(ctx, op); err != nil {
			return 0, err
		}
	} else if err := op(); err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(accounts))
	for _, accountID := range accounts {
		if _, ok := seen[accountID]; ok {
			continue
		}
		seen[accountID] = struct{}{}
		uc.invalidateStats(ctx, accountID)
	}

	return int64(len(accounts)), nil
}

func (uc *BillUseCase) invalidateStats(ctx context.Context, accountID string) {
	if uc.cache == nil {
		return
	}

	// Best effort; a stale stats entry expires with its TTL anyway.
	_ = uc.cache.Delete(ctx, statsCachePrefix+accountID)
}
