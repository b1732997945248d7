// internal/service/ledger_service_test.go
package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"gcbank/internal/auth"
	"gcbank/internal/domain"
	"gcbank/internal/repository"
	"gcbank/internal/util"
	"gcbank/pkg/db"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	args := m.Called(ctx, q, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	args := m.Called(ctx, q, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalance(ctx context.Context, q repository.DBExecutor, accountID int64, delta decimal.Decimal, updatedAt time.Time) error {
	args := m.Called(ctx, q, accountID, delta, updatedAt)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionsByAccountID(ctx context.Context, q repository.DBExecutor, accountID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, q, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockTxController is a mock implementation of db.TxController.
// It embeds MockDBExecutor so the service can use it as a repository.DBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Mock.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Mock.Called()
	return args.Error(0)
}

// fixture bundles the mocks and service under test.
type fixture struct {
	userRepo        *MockUserRepository
	accountRepo     *MockAccountRepository
	transactionRepo *MockTransactionRepository
	dbExecutor      *MockDBExecutor
	txController    *MockTxController
	service         LedgerService
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		userRepo:        new(MockUserRepository),
		accountRepo:     new(MockAccountRepository),
		transactionRepo: new(MockTransactionRepository),
		dbExecutor:      new(MockDBExecutor),
		txController:    new(MockTxController),
	}
	f.service = NewLedgerService(
		nil,
		f.dbExecutor,
		f.userRepo,
		f.accountRepo,
		f.transactionRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return f.txController, nil
		},
		func(tx db.TxController) error {
			return f.txController.Commit()
		},
		func(tx db.TxController) {
			_ = f.txController.Rollback()
		},
		4, // low bcrypt cost keeps tests fast
		func() time.Time { return fixedNow },
	)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	mock.AssertExpectationsForObjects(t, f.userRepo, f.accountRepo, f.transactionRepo, f.dbExecutor)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulRegistration", func(t *testing.T) {
		f := newFixture()

		f.userRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(nil, util.ErrUserNotFound).Once()
		f.userRepo.On("CreateUser", ctx, mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.User).ID = 1
		}).Return(nil).Once()
		f.accountRepo.On("CreateAccount", ctx, mock.Anything, mock.AnythingOfType("*domain.Account")).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Account).ID = 10
		}).Return(nil).Once()
		f.txController.Mock.On("Commit").Return(nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Maybe()

		user, account, err := f.service.Register(ctx, "alice", "password123")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NoError(t, auth.CheckPassword(user.PasswordHash, "password123"))
		assert.Equal(t, fixedNow, user.CreatedAt)

		assert.Equal(t, user.ID, account.UserID)
		assert.Equal(t, fmt.Sprintf("GC-%d", fixedNow.UnixMilli()), account.AccountNumber)
		assert.True(t, account.Balance.IsZero())
		assert.Equal(t, domain.AccountTypeSavings, account.AccountType)

		f.assertExpectations(t)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		f := newFixture()

		existing := &domain.User{ID: 1, Username: "alice"}
		f.userRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(existing, nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Once()

		user, account, err := f.service.Register(ctx, "alice", "password123")

		assert.ErrorIs(t, err, util.ErrDuplicateUsername)
		assert.Nil(t, user)
		assert.Nil(t, account)

		f.userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
		f.accountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
		f.txController.Mock.AssertNotCalled(t, "Commit")

		f.assertExpectations(t)
	})

	t.Run("InsertRaceMapsToDuplicate", func(t *testing.T) {
		f := newFixture()

		f.userRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(nil, util.ErrUserNotFound).Once()
		f.userRepo.On("CreateUser", ctx, mock.Anything, mock.AnythingOfType("*domain.User")).Return(util.ErrDuplicateUsername).Once()
		f.txController.Mock.On("Rollback").Return(nil).Once()

		_, _, err := f.service.Register(ctx, "alice", "password123")

		assert.ErrorIs(t, err, util.ErrDuplicateUsername)
		f.accountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)

		f.assertExpectations(t)
	})
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)
	accountID := int64(10)

	t.Run("SuccessfulDeposit", func(t *testing.T) {
		f := newFixture()
		amount := decimal.NewFromInt(100)

		account := &domain.Account{ID: accountID, UserID: userID, AccountNumber: "GC-1", Balance: decimal.NewFromInt(500)}
		updated := &domain.Account{ID: accountID, UserID: userID, AccountNumber: "GC-1", Balance: decimal.NewFromInt(600)}

		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, userID).Return(account, nil).Once()
		f.accountRepo.On("UpdateAccountBalance", ctx, mock.Anything, accountID, amount, fixedNow).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()
		f.accountRepo.On("GetAccountByUserID", ctx, mock.Anything, userID).Return(updated, nil).Once()
		f.txController.Mock.On("Commit").Return(nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Maybe()

		resAccount, resTx, err := f.service.Deposit(ctx, userID, amount)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(600).Equal(resAccount.Balance))
		assert.Equal(t, domain.TransactionTypeDeposit, resTx.Type)
		assert.True(t, amount.Equal(resTx.Amount))
		assert.Equal(t, accountID, resTx.AccountID)
		assert.Equal(t, fixedNow, resTx.TransactionTime)
		assert.Nil(t, resTx.Description)

		f.assertExpectations(t)
	})

	t.Run("NonPositiveAmountRejected", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
			f := newFixture()

			resAccount, resTx, err := f.service.Deposit(ctx, userID, amount)

			assert.ErrorIs(t, err, util.ErrInvalidAmount)
			assert.Nil(t, resAccount)
			assert.Nil(t, resTx)
			f.txController.Mock.AssertNotCalled(t, "Commit")
			f.txController.Mock.AssertNotCalled(t, "Rollback")
			f.assertExpectations(t)
		}
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		f := newFixture()

		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, userID).Return(nil, util.ErrAccountNotFound).Once()
		f.txController.Mock.On("Rollback").Return(nil).Once()

		_, _, err := f.service.Deposit(ctx, userID, decimal.NewFromInt(50))

		assert.ErrorIs(t, err, util.ErrAccountNotFound)
		f.txController.Mock.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)
	accountID := int64(10)

	t.Run("SuccessfulWithdraw", func(t *testing.T) {
		f := newFixture()
		amount := decimal.NewFromInt(30)

		account := &domain.Account{ID: accountID, UserID: userID, Balance: decimal.NewFromInt(100)}
		updated := &domain.Account{ID: accountID, UserID: userID, Balance: decimal.NewFromInt(70)}

		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, userID).Return(account, nil).Once()
		f.accountRepo.On("UpdateAccountBalance", ctx, mock.Anything, accountID, amount.Neg(), fixedNow).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()
		f.accountRepo.On("GetAccountByUserID", ctx, mock.Anything, userID).Return(updated, nil).Once()
		f.txController.Mock.On("Commit").Return(nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Maybe()

		resAccount, resTx, err := f.service.Withdraw(ctx, userID, amount)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(70).Equal(resAccount.Balance))
		assert.Equal(t, domain.TransactionTypeWithdraw, resTx.Type)
		assert.True(t, amount.Equal(resTx.Amount))

		f.assertExpectations(t)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		f := newFixture()

		account := &domain.Account{ID: accountID, UserID: userID, Balance: decimal.NewFromInt(20)}
		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, userID).Return(account, nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Once()

		_, _, err := f.service.Withdraw(ctx, userID, decimal.NewFromInt(100))

		assert.ErrorIs(t, err, util.ErrInsufficientBalance)
		f.accountRepo.AssertNotCalled(t, "UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		f.txController.Mock.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("NonPositiveAmountRejected", func(t *testing.T) {
		f := newFixture()

		_, _, err := f.service.Withdraw(ctx, userID, decimal.NewFromInt(-5))

		assert.ErrorIs(t, err, util.ErrInvalidAmount)
		f.txController.Mock.AssertNotCalled(t, "Rollback")
		f.assertExpectations(t)
	})
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	alice := &domain.User{ID: 1, Username: "alice"}
	bob := &domain.User{ID: 2, Username: "bob"}

	newAccounts := func() (*domain.Account, *domain.Account) {
		aliceAccount := &domain.Account{ID: 10, UserID: 1, AccountNumber: "GC-100", Balance: decimal.NewFromInt(70)}
		bobAccount := &domain.Account{ID: 20, UserID: 2, AccountNumber: "GC-200", Balance: decimal.NewFromInt(0)}
		return aliceAccount, bobAccount
	}

	t.Run("SuccessfulTransfer", func(t *testing.T) {
		f := newFixture()
		amount := decimal.NewFromInt(20)
		aliceAccount, bobAccount := newAccounts()

		f.userRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(alice, nil).Once()
		f.userRepo.On("GetUserByUsername", ctx, mock.Anything, "bob").Return(bob, nil).Once()
		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, int64(1)).Return(aliceAccount, nil).Once()
		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, int64(2)).Return(bobAccount, nil).Once()
		f.accountRepo.On("UpdateAccountBalance", ctx, mock.Anything, int64(10), amount.Neg(), fixedNow).Return(nil).Once()
		f.accountRepo.On("UpdateAccountBalance", ctx, mock.Anything, int64(20), amount, fixedNow).Return(nil).Once()

		var entries []*domain.Transaction
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Run(func(args mock.Arguments) {
			entries = append(entries, args.Get(2).(*domain.Transaction))
		}).Return(nil).Twice()

		updatedAlice := &domain.Account{ID: 10, UserID: 1, AccountNumber: "GC-100", Balance: decimal.NewFromInt(50)}
		updatedBob := &domain.Account{ID: 20, UserID: 2, AccountNumber: "GC-200", Balance: decimal.NewFromInt(20)}
		f.accountRepo.On("GetAccountByUserID", ctx, mock.Anything, int64(1)).Return(updatedAlice, nil).Once()
		f.accountRepo.On("GetAccountByUserID", ctx, mock.Anything, int64(2)).Return(updatedBob, nil).Once()
		f.txController.Mock.On("Commit").Return(nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Maybe()

		result, err := f.service.Transfer(ctx, 1, "bob", amount)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(result.FromAccount.Balance))
		assert.True(t, decimal.NewFromInt(20).Equal(result.ToAccount.Balance))

		// Exactly one matched pair of ledger entries.
		require.Len(t, entries, 2)
		out, in := entries[0], entries[1]
		assert.Equal(t, domain.TransactionTypeTransferOut, out.Type)
		assert.Equal(t, int64(10), out.AccountID)
		require.NotNil(t, out.Description)
		assert.Equal(t, "Transfer sent to GC-200", *out.Description)

		assert.Equal(t, domain.TransactionTypeTransferIn, in.Type)
		assert.Equal(t, int64(20), in.AccountID)
		require.NotNil(t, in.Description)
		assert.Equal(t, "Transfer received from GC-100", *in.Description)

		assert.True(t, out.Amount.Equal(in.Amount))
		assert.Equal(t, out.TransactionTime, in.TransactionTime)
		assert.Equal(t, fixedNow, out.TransactionTime)

		f.assertExpectations(t)
	})

	t.Run("RecipientNotFound", func(t *testing.T) {
		f := newFixture()

		f.userRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(alice, nil).Once()
		f.userRepo.On("GetUserByUsername", ctx, mock.Anything, "nobody").Return(nil, util.ErrUserNotFound).Once()
		f.txController.Mock.On("Rollback").Return(nil).Once()

		result, err := f.service.Transfer(ctx, 1, "nobody", decimal.NewFromInt(20))

		assert.ErrorIs(t, err, util.ErrRecipientNotFound)
		assert.Nil(t, result)
		f.accountRepo.AssertNotCalled(t, "UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		f.txController.Mock.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("NegativeAmountCaughtBeforeBalanceCheck", func(t *testing.T) {
		f := newFixture()

		f.userRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(alice, nil).Once()
		f.userRepo.On("GetUserByUsername", ctx, mock.Anything, "bob").Return(bob, nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Once()

		result, err := f.service.Transfer(ctx, 1, "bob", decimal.NewFromInt(-50))

		// A negative amount would always pass a balance comparison, so the
		// sign check must run first and nothing may be locked or written.
		assert.ErrorIs(t, err, util.ErrInvalidAmount)
		assert.Nil(t, result)
		f.accountRepo.AssertNotCalled(t, "GetAccountByUserIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
		f.accountRepo.AssertNotCalled(t, "UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		f := newFixture()
		aliceAccount, bobAccount := newAccounts()

		f.userRepo.On("GetUserByID", ctx, mock.Anything, int64(1)).Return(alice, nil).Once()
		f.userRepo.On("GetUserByUsername", ctx, mock.Anything, "bob").Return(bob, nil).Once()
		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, int64(1)).Return(aliceAccount, nil).Once()
		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, int64(2)).Return(bobAccount, nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Once()

		result, err := f.service.Transfer(ctx, 1, "bob", decimal.NewFromInt(1000))

		assert.ErrorIs(t, err, util.ErrInsufficientBalance)
		assert.Nil(t, result)
		f.accountRepo.AssertNotCalled(t, "UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		f.txController.Mock.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("LocksLowerOwnerIDFirst", func(t *testing.T) {
		f := newFixture()
		amount := decimal.NewFromInt(5)
		aliceAccount, bobAccount := newAccounts()
		bobAccount.Balance = decimal.NewFromInt(100)

		var lockOrder []int64
		record := func(args mock.Arguments) {
			lockOrder = append(lockOrder, args.Get(2).(int64))
		}

		// Bob (id 2) sends to alice (id 1): alice's row must still be locked first.
		f.userRepo.On("GetUserByID", ctx, mock.Anything, int64(2)).Return(bob, nil).Once()
		f.userRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(alice, nil).Once()
		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, int64(1)).Run(record).Return(aliceAccount, nil).Once()
		f.accountRepo.On("GetAccountByUserIDForUpdate", ctx, mock.Anything, int64(2)).Run(record).Return(bobAccount, nil).Once()
		f.accountRepo.On("UpdateAccountBalance", ctx, mock.Anything, int64(20), amount.Neg(), fixedNow).Return(nil).Once()
		f.accountRepo.On("UpdateAccountBalance", ctx, mock.Anything, int64(10), amount, fixedNow).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Twice()
		f.accountRepo.On("GetAccountByUserID", ctx, mock.Anything, int64(2)).Return(bobAccount, nil).Once()
		f.accountRepo.On("GetAccountByUserID", ctx, mock.Anything, int64(1)).Return(aliceAccount, nil).Once()
		f.txController.Mock.On("Commit").Return(nil).Once()
		f.txController.Mock.On("Rollback").Return(nil).Maybe()

		_, err := f.service.Transfer(ctx, 2, "alice", amount)

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, lockOrder)
		f.assertExpectations(t)
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	alice := &domain.User{ID: 1, Username: "alice"}
	account := &domain.Account{ID: 10, UserID: 1, AccountNumber: "GC-100", Balance: decimal.NewFromInt(50)}
	recent := []domain.Transaction{
		{ID: 3, AccountID: 10, Type: domain.TransactionTypeTransferOut, Amount: decimal.NewFromInt(20)},
		{ID: 2, AccountID: 10, Type: domain.TransactionTypeWithdraw, Amount: decimal.NewFromInt(30)},
		{ID: 1, AccountID: 10, Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(100)},
	}

	f.userRepo.On("GetUserByID", ctx, f.dbExecutor, int64(1)).Return(alice, nil).Once()
	f.accountRepo.On("GetAccountByUserID", ctx, f.dbExecutor, int64(1)).Return(account, nil).Once()
	// Dashboard caps the history at the five most recent entries.
	f.transactionRepo.On("GetTransactionsByAccountID", ctx, f.dbExecutor, int64(10), 5, 0).Return(recent, int64(3), nil).Once()

	view, err := f.service.Dashboard(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, alice, view.User)
	assert.Equal(t, account, view.Account)
	assert.Equal(t, recent, view.RecentTransactions)
	f.assertExpectations(t)
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	account := &domain.Account{ID: 10, UserID: 1}
	history := []domain.Transaction{
		{ID: 2, AccountID: 10, Type: domain.TransactionTypeWithdraw, Amount: decimal.NewFromInt(30)},
		{ID: 1, AccountID: 10, Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(100)},
	}

	f.accountRepo.On("GetAccountByUserID", ctx, f.dbExecutor, int64(1)).Return(account, nil).Once()
	f.transactionRepo.On("GetTransactionsByAccountID", ctx, f.dbExecutor, int64(10), 0, 0).Return(history, int64(2), nil).Once()

	transactions, totalCount, err := f.service.Transactions(ctx, 1, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, history, transactions)
	assert.Equal(t, int64(2), totalCount)
	f.assertExpectations(t)
}
