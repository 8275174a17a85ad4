package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mehdib/finsms/internal/domain"
	"github.com/mehdib/finsms/internal/usecase"
)

// BillRepository implements bill persistence.
type BillRepository struct {
	pool *pgxpool.Pool
}

// NewBillRepository creates a new bill repository.
func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

// Create inserts a bill inside the given unit of work.
func (r *BillRepository) Create(ctx context.Context, uow usecase.UnitOfWork, bill *domain.Bill) error {
	tx, err := pgxTxFrom(uow)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bills (id, transaction_id, account_id, merchant, amount, due_date, status, is_recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(ctx, query,
		bill.ID,
		bill.TransactionID,
		bill.AccountID,
		bill.Merchant,
		decimalToNumeric(bill.Amount),
		bill.DueDate,
		string(bill.Status),
		bill.IsRecurring,
		bill.CreatedAt,
		bill.UpdatedAt,
	)

	return err
}

// GetByID retrieves a bill by ID.
func (r *BillRepository) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	query := `
		SELECT id, transaction_id, account_id, merchant, amount, due_date, status, is_recurring, created_at, updated_at
		FROM bills
		WHERE id = $1
	`

	bill, err := scanBill(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBillNotFound
	}

	return bill, err
}

// ListByAccount retrieves bills for an account, soonest due first. An empty
// status matches all statuses.
func (r *BillRepository) ListByAccount(ctx context.Context, accountID string, status domain.BillStatus, limit, offset int) ([]*domain.Bill, error) {
	query := `
		SELECT id, transaction_id, account_id, merchant, amount, due_date, status, is_recurring, created_at, updated_at
		FROM bills
		WHERE account_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY due_date ASC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, accountID, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*domain.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}

	return bills, rows.Err()
}

// Update persists bill status, due date and recurrence changes.
func (r *BillRepository) Update(ctx context.Context, bill *domain.Bill) error {
	query := `
		UPDATE bills
		SET status = $2, due_date = $3, is_recurring = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		bill.ID,
		string(bill.Status),
		bill.DueDate,
		bill.IsRecurring,
		bill.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBillNotFound
	}

	return nil
}

// Delete removes a bill.
func (r *BillRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM bills WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBillNotFound
	}

	return nil
}

// Stats aggregates bill amounts per status for one account.
func (r *BillRepository) Stats(ctx context.Context, accountID string) (*domain.BillStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'overdue'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0)
		FROM bills
		WHERE account_id = $1
	`

	var (
		stats   domain.BillStats
		total   pgtype.Numeric
		pending pgtype.Numeric
		overdue pgtype.Numeric
		paid    pgtype.Numeric
	)

	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&stats.TotalBills,
		&total,
		&pending,
		&overdue,
		&paid,
	)
	if err != nil {
		return nil, err
	}

	stats.TotalAmount = numericToDecimal(total)
	stats.PendingAmount = numericToDecimal(pending)
	stats.OverdueAmount = numericToDecimal(overdue)
	stats.PaidAmount = numericToDecimal(paid)

	return &stats, nil
}

// MarkOverdue flips pending bills past their due date to overdue and returns
// the owning account id of every bill updated, so callers can invalidate
// per-account caches.
func (r *BillRepository) MarkOverdue(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE bills
		SET status = 'overdue', updated_at = $1
		WHERE status = 'pending' AND due_date < $1
		RETURNING account_id
	`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var accountID string
		if err := rows.Scan(&accountID); err != nil {
			return nil, err
		}
		accounts = append(accounts, accountID)
	}

	return accounts, rows.Err()
}

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var (
		bill   domain.Bill
		amount pgtype.Numeric
	)

	err := row.Scan(
		&bill.ID,
		&bill.TransactionID,
		&bill.AccountID,
		&bill.Merchant,
		&amount,
		&bill.DueDate,
		&bill.Status,
		&bill.IsRecurring,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	bill.Amount = numericToDecimal(amount)

	return &bill, nil
}
