package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mehdib/finsms/internal/domain"
)

// TransactionUseCase handles manual transaction entry and reads.
type TransactionUseCase struct {
	txManager TransactionManager
	txnRepo   TransactionRepository
	idGen     IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(txManager TransactionManager, txnRepo TransactionRepository, idGen IDGenerator) *TransactionUseCase {
	return &TransactionUseCase{
		txManager: txManager,
		txnRepo:   txnRepo,
		idGen:     idGen,
	}
}

// CreateManualInput represents a manually entered transaction.
type CreateManualInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Direction   domain.Direction
	Category    domain.Category
	Merchant    string
	Description string
}

// CreateManual persists a transaction with source "manual". Direction
// defaults to debit, category to other, merchant to "Unknown".
func (uc *TransactionUseCase) CreateManual(ctx context.Context, input CreateManualInput) (*domain.Transaction, error) {
	if input.Direction == "" {
		input.Direction = domain.DirectionDebit
	}

	if input.Category == "" {
		input.Category = domain.CategoryOther
	}

	if input.Merchant == "" {
		input.Merchant = "Unknown"
	}

	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		AccountID:   input.AccountID,
		Amount:      input.Amount.Round(2),
		Direction:   input.Direction,
		Category:    input.Category,
		Merchant:    input.Merchant,
		Source:      domain.SourceManual,
		Description: domain.TruncateDescription(input.Description),
		CreatedAt:   time.Now().UTC(),
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	uow, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	if err := uc.txnRepo.Create(ctx, uow, txn); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListTransactionsByAccountInput represents input for listing transactions.
type ListTransactionsByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists transactions for an account, newest first.
func (uc *TransactionUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = defaultPageSize
	}

	if input.Limit > maxPageSize {
		input.Limit = maxPageSize
	}

	return uc.txnRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}
