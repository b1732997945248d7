// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdraw    TransactionType = "WITHDRAW"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
)

// Transaction is an immutable ledger entry recording one money movement
// against one account. Rows are append-only: created by the ledger service,
// never updated or deleted.
type Transaction struct {
	ID              int64           `db:"id" json:"id"`                             // Primary key, BIGSERIAL in DB
	AccountID       int64           `db:"account_id" json:"account_id"`             // Owning account, many-to-one
	Type            TransactionType `db:"type" json:"type"`                         // DEPOSIT, WITHDRAW, TRANSFER_OUT, TRANSFER_IN
	Amount          decimal.Decimal `db:"amount" json:"amount"`                     // Amount as stated, NUMERIC(20, 4) in DB
	Description     *string         `db:"description" json:"description"`           // Optional free-text description
	TransactionTime time.Time       `db:"transaction_time" json:"transaction_time"` // Assigned at creation from the service clock
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(accountID int64, txType TransactionType, amount decimal.Decimal, description *string, now time.Time) *Transaction {
	return &Transaction{
		AccountID:       accountID,
		Type:            txType,
		Amount:          amount,
		Description:     description,
		TransactionTime: now,
	}
}
