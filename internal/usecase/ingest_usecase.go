package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mehdib/finsms/internal/classify"
	"github.com/mehdib/finsms/internal/domain"
	"github.com/mehdib/finsms/internal/normalize"
)

// IngestUseCase turns one raw inbound message into durable financial
// records: always a Transaction, plus a linked Bill when the message is
// bill-like. The two writes share a unit of work and commit or roll back
// together.
type IngestUseCase struct {
	txManager TransactionManager
	txnRepo   TransactionRepository
	billRepo  BillRepository
	extractor MessageExtractor
	idGen     IDGenerator
	cache     Cache
}

// NewIngestUseCase creates a new IngestUseCase. A nil cache disables stats
// invalidation.
func NewIngestUseCase(
	txManager TransactionManager,
	txnRepo TransactionRepository,
	billRepo BillRepository,
	extractor MessageExtractor,
	idGen IDGenerator,
	cache Cache,
) *IngestUseCase {
	return &IngestUseCase{
		txManager: txManager,
		txnRepo:   txnRepo,
		billRepo:  billRepo,
		extractor: extractor,
		idGen:     idGen,
		cache:     cache,
	}
}

// IngestInput represents one inbound message. The caller is responsible for
// account existence and ownership checks.
type IngestInput struct {
	AccountID string
	RawText   string
}

// IngestResult is the outcome of a successful ingestion. Bill is nil when
// the message was not bill-like.
type IngestResult struct {
	Parsed      domain.ParsedMessage
	Transaction *domain.Transaction
	Bill        *domain.Bill
}

// Ingest runs the full pipeline: extract entities, normalize amount and due
// date, classify, then persist atomically. Every failure is reported as
// domain.ErrIngestionFailed wrapping the underlying cause; no partial state
// is ever visible.
func (uc *IngestUseCase) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	if input.AccountID == "" {
		return nil, ingestErr(domain.ErrAccountRequired)
	}

	if strings.TrimSpace(input.RawText) == "" {
		return nil, ingestErr(domain.ErrEmptyMessage)
	}

	parsed := uc.extractor.Extract(input.RawText)

	// Normalization never fails: unparseable amounts degrade to 0.00 and
	// unparseable dates to nil. These are designed defaults, not errors.
	amount := normalize.Amount(parsed.AmountLiteral)
	dueDate := normalize.Date(parsed.DueDateLiteral)

	merchant := parsed.Merchant()
	signals := classify.Classify(merchant, parsed.RawText)

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		AccountID:   input.AccountID,
		Amount:      amount,
		Direction:   signals.Direction,
		Category:    signals.Category,
		Merchant:    merchant,
		Source:      domain.SourceMessage,
		Description: domain.TruncateDescription(parsed.RawText),
		CreatedAt:   now,
	}

	if err := txn.Validate(); err != nil {
		return nil, ingestErr(err)
	}

	// An extracted due date counts as bill evidence even without keywords.
	var bill *domain.Bill
	if signals.IsBill || dueDate != nil {
		due := now.Add(defaultDueDateOffset)
		if dueDate != nil {
			due = *dueDate
		}

		bill = &domain.Bill{
			ID:            uc.idGen.Generate(),
			TransactionID: &txn.ID,
			AccountID:     input.AccountID,
			Merchant:      merchant,
			Amount:        amount,
			DueDate:       due,
			Status:        domain.BillStatusPending,
			IsRecurring:   signals.IsRecurring,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := bill.Validate(); err != nil {
			return nil, ingestErr(err)
		}
	}

	uow, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, ingestErr(err)
	}
	defer uow.Rollback(ctx)

	if err := uc.txnRepo.Create(ctx, uow, txn); err != nil {
		return nil, ingestErr(err)
	}

	if bill != nil {
		if err := uc.billRepo.Create(ctx, uow, bill); err != nil {
			return nil, ingestErr(err)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, ingestErr(err)
	}

	// A committed bill changes the account's totals; drop the cached stats
	// so the next read recomputes them. Best effort, same as bill updates.
	if bill != nil && uc.cache != nil {
		_ = uc.cache.Delete(ctx, statsCachePrefix+input.AccountID)
	}

	return &IngestResult{
		Parsed:      parsed,
		Transaction: txn,
		Bill:        bill,
	}, nil
}

func ingestErr(cause error) error {
	return fmt.Errorf("%w: %w", domain.ErrIngestionFailed, cause)
}
