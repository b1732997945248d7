// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidInput        = errors.New("invalid input provided")
)

// IsError reports whether err matches the target sentinel, unwrapping as needed.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
