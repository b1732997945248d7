// internal/api/handler/bank.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"gcbank/internal/api/types"
	"gcbank/internal/auth"
	"gcbank/internal/domain"
	"gcbank/internal/service"
	"gcbank/internal/util"
)

// BankHandler handles the money-movement and read-side endpoints.
type BankHandler struct {
	ledger   service.LedgerService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(ledger service.LedgerService, logger *slog.Logger) *BankHandler {
	return &BankHandler{
		ledger:   ledger,
		validate: validator.New(),
		logger:   logger,
	}
}

// callerID extracts the authenticated user id set by the router middleware.
func (h *BankHandler) callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return 0, false
	}
	return userID, true
}

// Dashboard returns the caller's user, account and five most recent ledger entries.
// GET /dashboard
func (h *BankHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	view, err := h.ledger.Dashboard(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"user":         view.User,
		"account":      view.Account,
		"transactions": view.RecentTransactions,
	})
}

// Transactions returns the caller's ledger history, newest first. Optional
// limit/offset query parameters paginate; the default is the full history.
// GET /transactions
func (h *BankHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		limit = 0 // Full history
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transactions, totalCount, err := h.ledger.Transactions(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// AmountRequest represents the request body for deposit and withdraw.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit handles the deposit money request.
// POST /deposit
func (h *BankHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	account, transaction, err := h.ledger.Deposit(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":        "Deposit successful",
		"new_balance":    account.Balance,
		"transaction_id": transaction.ID,
	})
}

// Withdraw handles the withdraw money request.
// POST /withdraw
func (h *BankHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	account, transaction, err := h.ledger.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":        "Withdraw successful",
		"new_balance":    account.Balance,
		"transaction_id": transaction.ID,
	})
}

// TransferRequest represents the request body for transfer.
type TransferRequest struct {
	ToUsername string          `json:"to_username" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

// Transfer handles the transfer money request.
// POST /transfer
func (h *BankHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.ledger.Transfer(r.Context(), userID, req.ToUsername, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":        "Transfer successful",
		"new_balance":    result.FromAccount.Balance,
		"transaction_id": result.OutEntry.ID,
	})
}
