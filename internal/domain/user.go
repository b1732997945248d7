// internal/domain/user.go
package domain

import "time"

// Default role assigned to every registered user.
const RoleUser = "USER"

// User represents a registered user of the bank.
type User struct {
	ID           int64     `db:"id" json:"id"`                       // Primary key, BIGSERIAL in DB
	Username     string    `db:"username" json:"username"`           // Unique username
	PasswordHash string    `db:"password_hash" json:"-"`             // bcrypt hash, never serialized
	Role         string    `db:"role" json:"role"`                   // Role tag, e.g. "USER"
	CreatedAt    time.Time `db:"created_at" json:"created_at"`       // Timestamp of creation
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`       // Timestamp of last update
}

// NewUser creates a new User instance with the default role.
// The caller supplies the timestamp so a single clock read can stamp
// everything created in one operation.
func NewUser(username, passwordHash string, now time.Time) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
