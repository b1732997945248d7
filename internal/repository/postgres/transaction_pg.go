// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"gcbank/internal/domain"
	"gcbank/internal/repository"

	"github.com/jmoiron/sqlx"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	// Methods receive a DBExecutor directly, so no *sqlx.DB is held here.
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends a new ledger entry using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (account_id, type, amount, description, transaction_time)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.AccountID,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.TransactionTime,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionsByAccountID retrieves ledger entries for an account ordered by
// transaction time descending. A non-positive limit returns the full history.
// It performs two queries: one for the data and one for the total count.
func (r *TransactionRepository) GetTransactionsByAccountID(ctx context.Context, q repository.DBExecutor, accountID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}

	query := `
		SELECT id, account_id, type, amount, description, transaction_time
		FROM transactions
		WHERE account_id = $1
		ORDER BY transaction_time DESC, id DESC`
	args := []interface{}{accountID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	err := q.SelectContext(ctx, &transactions, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for account %d: %w", accountID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE account_id = $1`
	err = q.GetContext(ctx, &totalCount, countQuery, accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total transaction count for account %d: %w", accountID, err)
	}

	return transactions, totalCount, nil
}
