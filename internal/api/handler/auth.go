// internal/api/handler/auth.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"gcbank/internal/service"
	"gcbank/internal/util"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	ledger   service.LedgerService
	auth     service.AuthService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(ledger service.LedgerService, authSvc service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		ledger:   ledger,
		auth:     authSvc,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles new user registration.
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	user, account, err := h.ledger.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message":        "Registration successful",
		"user_id":        user.ID,
		"username":       user.Username,
		"account_number": account.AccountNumber,
		"balance":        account.Balance,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles session creation.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// Logout acknowledges the end of a session. Tokens are stateless, so nothing
// is revoked server-side; expiry bounds the session lifetime.
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}
