package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/mehdib/finsms/internal/domain"
)

func TestTxManagerBeginSuccess(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectCommit()

	manager := newTxManagerWithPool(mockPool)
	uow, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if uow == nil {
		t.Fatalf("expected unit of work")
	}

	if err := uow.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestTxManagerBeginError(t *testing.T) {
	mockPool := newMockPool(t)
	mockErr := errors.New("begin failed")
	mockPool.ExpectBegin().WillReturnError(mockErr)

	manager := newTxManagerWithPool(mockPool)
	uow, err := manager.Begin(context.Background())
	if err == nil || !errors.Is(err, mockErr) {
		t.Fatalf("expected begin error, got err=%v uow=%v", err, uow)
	}
}

func TestTxRollback(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectRollback()

	manager := newTxManagerWithPool(mockPool)
	uow, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uow.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestCreateWritesShareUnitOfWork(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("INSERT INTO transactions").
		WithArgs(anyArgs(9)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec("INSERT INTO bills").
		WithArgs(anyArgs(10)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	manager := newTxManagerWithPool(mockPool)
	uow, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:        "txn-1",
		AccountID: "acc-1",
		Amount:    decimal.RequireFromString("450.00"),
		Direction: domain.DirectionDebit,
		Category:  domain.CategoryUtilities,
		Merchant:  "Inwi",
		Source:    domain.SourceMessage,
		CreatedAt: now,
	}
	bill := &domain.Bill{
		ID:            "bill-1",
		TransactionID: &txn.ID,
		AccountID:     "acc-1",
		Merchant:      "Inwi",
		Amount:        txn.Amount,
		DueDate:       now.Add(24 * time.Hour),
		Status:        domain.BillStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	txnRepo := NewTransactionRepository(nil)
	if err := txnRepo.Create(context.Background(), uow, txn); err != nil {
		t.Fatalf("transaction create failed: %v", err)
	}

	billRepo := NewBillRepository(nil)
	if err := billRepo.Create(context.Background(), uow, bill); err != nil {
		t.Fatalf("bill create failed: %v", err)
	}

	if err := uow.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestCreateFailureLeavesUnitOfWorkRollbackable(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("INSERT INTO transactions").
		WithArgs(anyArgs(9)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec("INSERT INTO bills").
		WithArgs(anyArgs(10)...).
		WillReturnError(errors.New("foreign key violation"))
	mockPool.ExpectRollback()

	manager := newTxManagerWithPool(mockPool)
	uow, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{ID: "txn-1", AccountID: "acc-1", CreatedAt: now}
	bill := &domain.Bill{ID: "bill-1", AccountID: "acc-1", DueDate: now, Status: domain.BillStatusPending}

	if err := NewTransactionRepository(nil).Create(context.Background(), uow, txn); err != nil {
		t.Fatalf("transaction create failed: %v", err)
	}
	if err := NewBillRepository(nil).Create(context.Background(), uow, bill); err == nil {
		t.Fatal("expected bill create to fail")
	}

	if err := uow.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
