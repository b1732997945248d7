// internal/service/ledger_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"gcbank/internal/auth"
	"gcbank/internal/domain"
	"gcbank/internal/repository"
	"gcbank/internal/util"
	"gcbank/pkg/db"

	"github.com/shopspring/decimal"
)

// Number of ledger entries shown on the dashboard.
const dashboardRecentLimit = 5

// TransferResult carries both sides of a completed transfer.
type TransferResult struct {
	FromAccount *domain.Account
	ToAccount   *domain.Account
	OutEntry    *domain.Transaction
	InEntry     *domain.Transaction
}

// DashboardView aggregates everything the dashboard renders for one user.
type DashboardView struct {
	User               *domain.User
	Account            *domain.Account
	RecentTransactions []domain.Transaction
}

// LedgerService defines the money-movement business logic: registration,
// deposit, withdraw, transfer and the read-side queries backing the dashboard.
type LedgerService interface {
	Register(ctx context.Context, username, password string) (*domain.User, *domain.Account, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error)
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error)
	Transfer(ctx context.Context, userID int64, toUsername string, amount decimal.Decimal) (*TransferResult, error)
	Dashboard(ctx context.Context, userID int64) (*DashboardView, error)
	Transactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo        repository.UserRepository
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc    // Injected dependency for beginning transactions
	commitTx        db.CommitTxFunc   // Injected dependency for committing transactions
	rollbackTx      db.RollbackTxFunc // Injected dependency for rolling back transactions
	bcryptCost      int
	now             func() time.Time // Injected clock so tests can assert exact timestamps
}

// NewLedgerService creates a new instance of LedgerService.
// A nil now falls back to the UTC system clock.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	bcryptCost int,
	now func() time.Time,
) LedgerService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &ledgerService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		bcryptCost:      bcryptCost,
		now:             now,
	}
}

// accountNumber derives the unique account number from the creation instant.
func accountNumber(now time.Time) string {
	return fmt.Sprintf("GC-%d", now.UnixMilli())
}

// Register creates a User and its single Account as one atomic unit.
// Fails with util.ErrDuplicateUsername if the username is taken.
func (s *ledgerService) Register(ctx context.Context, username, password string) (*domain.User, *domain.Account, error) {
	passwordHash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("register: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByUsername(ctx, txExecutor, username)
	if err == nil {
		return nil, nil, util.ErrDuplicateUsername
	}
	if !util.IsError(err, util.ErrUserNotFound) {
		return nil, nil, fmt.Errorf("register: failed to check existing user: %w", err)
	}

	now := s.now()
	user := domain.NewUser(username, passwordHash, now)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		if util.IsError(err, util.ErrDuplicateUsername) {
			return nil, nil, util.ErrDuplicateUsername
		}
		return nil, nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	account := domain.NewAccount(user.ID, accountNumber(now), now)
	if err := s.accountRepo.CreateAccount(ctx, txExecutor, account); err != nil {
		return nil, nil, fmt.Errorf("register: failed to create account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	return user, account, nil
}

// Deposit adds money to the caller's account and appends one DEPOSIT entry.
func (s *ledgerService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountByUserIDForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to get account for user %d: %w", userID, err)
	}

	now := s.now()
	if err := s.accountRepo.UpdateAccountBalance(ctx, txExecutor, account.ID, amount, now); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to update account balance: %w", err)
	}

	transaction := domain.NewTransaction(account.ID, domain.TransactionTypeDeposit, amount, nil, now)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to create transaction: %w", err)
	}

	updatedAccount, err := s.accountRepo.GetAccountByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to re-fetch updated account for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	return updatedAccount, transaction, nil
}

// Withdraw removes money from the caller's account and appends one WITHDRAW entry.
// Fails with util.ErrInsufficientBalance when amount exceeds the balance.
func (s *ledgerService) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidAmount
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("withdraw: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountByUserIDForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to get account for user %d: %w", userID, err)
	}

	if account.Balance.LessThan(amount) {
		return nil, nil, util.ErrInsufficientBalance
	}

	now := s.now()
	if err := s.accountRepo.UpdateAccountBalance(ctx, txExecutor, account.ID, amount.Neg(), now); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to update account balance: %w", err)
	}

	transaction := domain.NewTransaction(account.ID, domain.TransactionTypeWithdraw, amount, nil, now)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to create transaction: %w", err)
	}

	updatedAccount, err := s.accountRepo.GetAccountByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to re-fetch updated account for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to commit transaction: %w", err)
	}

	return updatedAccount, transaction, nil
}

// Transfer moves money from the caller's account to the account owned by
// toUsername. It validates sender identity (fatal if missing), recipient
// existence, amount positivity and sufficient balance, in that order and all
// before any write. On success it debits the sender, credits the recipient
// and appends the TRANSFER_OUT/TRANSFER_IN pair, both stamped with the same
// instant and cross-referencing the counterparty's account number.
func (s *ledgerService) Transfer(ctx context.Context, userID int64, toUsername string, amount decimal.Decimal) (*TransferResult, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("transfer: transaction controller does not implement DBExecutor")
	}

	sender, err := s.userRepo.GetUserByID(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to resolve sender %d: %w", userID, err)
	}

	recipient, err := s.userRepo.GetUserByUsername(ctx, txExecutor, toUsername)
	if err != nil {
		if util.IsError(err, util.ErrUserNotFound) {
			return nil, util.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("transfer: failed to resolve recipient '%s': %w", toUsername, err)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	// Lock both account rows in ascending owner-id order so two concurrent
	// transfers between the same pair cannot deadlock.
	lockOrder := []int64{sender.ID, recipient.ID}
	if recipient.ID < sender.ID {
		lockOrder[0], lockOrder[1] = recipient.ID, sender.ID
	}
	locked := make(map[int64]*domain.Account, 2)
	for _, ownerID := range lockOrder {
		account, err := s.accountRepo.GetAccountByUserIDForUpdate(ctx, txExecutor, ownerID)
		if err != nil {
			return nil, fmt.Errorf("transfer: failed to lock account for user %d: %w", ownerID, err)
		}
		locked[ownerID] = account
	}
	senderAccount := locked[sender.ID]
	recipientAccount := locked[recipient.ID]

	if senderAccount.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientBalance
	}

	now := s.now()
	if err := s.accountRepo.UpdateAccountBalance(ctx, txExecutor, senderAccount.ID, amount.Neg(), now); err != nil {
		return nil, fmt.Errorf("transfer: failed to debit sender account: %w", err)
	}
	if err := s.accountRepo.UpdateAccountBalance(ctx, txExecutor, recipientAccount.ID, amount, now); err != nil {
		return nil, fmt.Errorf("transfer: failed to credit recipient account: %w", err)
	}

	outDescription := "Transfer sent to " + recipientAccount.AccountNumber
	outEntry := domain.NewTransaction(senderAccount.ID, domain.TransactionTypeTransferOut, amount, &outDescription, now)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, outEntry); err != nil {
		return nil, fmt.Errorf("transfer: failed to create debit-side transaction: %w", err)
	}

	inDescription := "Transfer received from " + senderAccount.AccountNumber
	inEntry := domain.NewTransaction(recipientAccount.ID, domain.TransactionTypeTransferIn, amount, &inDescription, now)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, inEntry); err != nil {
		return nil, fmt.Errorf("transfer: failed to create credit-side transaction: %w", err)
	}

	updatedSenderAccount, err := s.accountRepo.GetAccountByUserID(ctx, txExecutor, sender.ID)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to re-fetch sender account: %w", err)
	}
	updatedRecipientAccount, err := s.accountRepo.GetAccountByUserID(ctx, txExecutor, recipient.ID)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to re-fetch recipient account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("transfer: failed to commit transaction: %w", err)
	}

	return &TransferResult{
		FromAccount: updatedSenderAccount,
		ToAccount:   updatedRecipientAccount,
		OutEntry:    outEntry,
		InEntry:     inEntry,
	}, nil
}

// Dashboard returns the caller's user record, account and the five most
// recent ledger entries, newest first.
func (s *ledgerService) Dashboard(ctx context.Context, userID int64) (*DashboardView, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to get user %d: %w", userID, err)
	}

	account, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to get account for user %d: %w", userID, err)
	}

	recent, _, err := s.transactionRepo.GetTransactionsByAccountID(ctx, s.dbExecutor, account.ID, dashboardRecentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to get recent transactions: %w", err)
	}

	return &DashboardView{
		User:               user,
		Account:            account,
		RecentTransactions: recent,
	}, nil
}

// Transactions returns the caller's ledger entries newest first. A
// non-positive limit returns the full history.
func (s *ledgerService) Transactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	account, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("transactions: failed to get account for user %d: %w", userID, err)
	}

	transactions, totalCount, err := s.transactionRepo.GetTransactionsByAccountID(ctx, s.dbExecutor, account.ID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("transactions: failed to retrieve history: %w", err)
	}

	return transactions, totalCount, nil
}
