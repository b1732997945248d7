// internal/domain/account.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Default account type for accounts opened at registration.
const AccountTypeSavings = "SAVINGS"

// Account represents a user's single bank account.
type Account struct {
	ID            int64           `db:"id" json:"id"`                         // Primary key, BIGSERIAL in DB
	UserID        int64           `db:"user_id" json:"user_id"`               // Foreign key to User, 1:1
	AccountNumber string          `db:"account_number" json:"account_number"` // Unique, "GC-<unix millis>"
	Balance       decimal.Decimal `db:"balance" json:"balance"`               // Current balance, NUMERIC(20, 4) in DB
	AccountType   string          `db:"account_type" json:"account_type"`     // e.g. "SAVINGS"
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`         // Timestamp of creation
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`         // Timestamp of last update
}

// NewAccount creates a new Account instance with a zero balance.
func NewAccount(userID int64, accountNumber string, now time.Time) *Account {
	return &Account{
		UserID:        userID,
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		AccountType:   AccountTypeSavings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
