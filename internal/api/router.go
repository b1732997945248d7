// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gcbank/internal/api/handler"
	"gcbank/internal/auth"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(authHandler *handler.AuthHandler, bankHandler *handler.BankHandler, tokens *auth.TokenManager, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public endpoints
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Endpoints requiring an authenticated session
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(tokens))
		r.Post("/logout", authHandler.Logout)
		r.Get("/dashboard", bankHandler.Dashboard)
		r.Get("/transactions", bankHandler.Transactions)
		r.Post("/deposit", bankHandler.Deposit)
		r.Post("/withdraw", bankHandler.Withdraw)
		r.Post("/transfer", bankHandler.Transfer)
	})

	return r
}
