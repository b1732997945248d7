// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gcbank/internal/domain"
	"gcbank/internal/repository"
	"gcbank/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, user_id, account_number, balance, account_type, created_at, updated_at`

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct {
	// Methods receive a DBExecutor directly, so no *sqlx.DB is held here.
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new account into the database using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (user_id, account_number, balance, account_type, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		account.UserID,
		account.AccountNumber,
		account.Balance,
		account.AccountType,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByUserID retrieves the account owned by the given user.
func (r *AccountRepository) GetAccountByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	err := q.GetContext(ctx, &account, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account for user %d: %w", userID, err)
	}
	return &account, nil
}

// GetAccountByUserIDForUpdate retrieves the account owned by the given user and
// locks its row for the duration of the surrounding transaction.
func (r *AccountRepository) GetAccountByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &account, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account for user %d: %w", userID, err)
	}
	return &account, nil
}

// UpdateAccountBalance applies a signed delta to an account's balance using the provided DBExecutor.
func (r *AccountRepository) UpdateAccountBalance(ctx context.Context, q repository.DBExecutor, accountID int64, delta decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE accounts SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, updatedAt, accountID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %d: %w", accountID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating account %d: %w", accountID, err)
	}
	if rowsAffected == 0 {
		return util.ErrAccountNotFound
	}
	return nil
}
