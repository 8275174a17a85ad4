package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mehdib/finsms/internal/domain"
	"github.com/mehdib/finsms/internal/usecase"
)

// TransactionRepository implements transaction persistence.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction inside the given unit of work.
func (r *TransactionRepository) Create(ctx context.Context, uow usecase.UnitOfWork, txn *domain.Transaction) error {
	tx, err := pgxTxFrom(uow)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (id, account_id, amount, direction, category, merchant, source, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		txn.ID,
		txn.AccountID,
		decimalToNumeric(txn.Amount),
		string(txn.Direction),
		string(txn.Category),
		txn.Merchant,
		string(txn.Source),
		txn.Description,
		txn.CreatedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT id, account_id, amount, direction, category, merchant, source, description, created_at
		FROM transactions
		WHERE id = $1
	`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}

	return txn, err
}

// ListByAccount retrieves transactions for an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, account_id, amount, direction, category, merchant, source, description, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn    domain.Transaction
		amount pgtype.Numeric
	)

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&amount,
		&txn.Direction,
		&txn.Category,
		&txn.Merchant,
		&txn.Source,
		&txn.Description,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Amount = numericToDecimal(amount)

	return &txn, nil
}

// pgxTxFrom unwraps the pgx transaction behind a unit of work.
func pgxTxFrom(uow usecase.UnitOfWork) (pgx.Tx, error) {
	wrapper, ok := uow.(*Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected unit of work type %T", uow)
	}

	return wrapper.PgxTx(), nil
}
