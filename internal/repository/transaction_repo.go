// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"gcbank/internal/domain"
)

// TransactionRepository defines the interface for ledger entry data operations.
type TransactionRepository interface {
	// CreateTransaction appends a new ledger entry using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByAccountID retrieves ledger entries for an account,
	// newest first. A non-positive limit returns the full history.
	GetTransactionsByAccountID(ctx context.Context, q DBExecutor, accountID int64, limit, offset int) ([]domain.Transaction, int64, error)
}
