// internal/repository/account_repo.go
package repository

import (
	"context"
	"time"

	"gcbank/internal/domain"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	// CreateAccount adds a new account to the database using the provided DBExecutor.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByUserID retrieves the account owned by the given user.
	GetAccountByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Account, error)
	// GetAccountByUserIDForUpdate retrieves the account owned by the given user
	// and takes a row-level lock on it. Must be called inside a transaction.
	GetAccountByUserIDForUpdate(ctx context.Context, q DBExecutor, userID int64) (*domain.Account, error)
	// UpdateAccountBalance applies a signed delta to an account's balance.
	UpdateAccountBalance(ctx context.Context, q DBExecutor, accountID int64, delta decimal.Decimal, updatedAt time.Time) error
}
