// internal/auth/context.go
package auth

import "context"

type contextKey string

const userIDKey contextKey = "user_id"

// ContextWithUserID returns a context carrying the authenticated user's id.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user's id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
