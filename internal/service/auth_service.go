// internal/service/auth_service.go
package service

import (
	"context"
	"fmt"

	"gcbank/internal/auth"
	"gcbank/internal/domain"
	"gcbank/internal/repository"
	"gcbank/internal/util"
)

// AuthService authenticates users and mints session tokens.
type AuthService interface {
	// Login verifies the credentials and returns a bearer token for the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// authService implements the AuthService interface.
type authService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(dbExecutor repository.DBExecutor, userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		tokens:     tokens,
	}
}

// Login verifies username and password. Unknown usernames and wrong passwords
// both surface as util.ErrInvalidCredentials so callers cannot probe for
// registered usernames.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if util.IsError(err, util.ErrUserNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: failed to get user '%s': %w", username, err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("login: failed to generate token: %w", err)
	}

	return token, user, nil
}
