package utils

import "context"

type contextKey string

const UserIDKey contextKey = "user_id"

// SetUserContext sets the signed-in user into context (called by middleware)
func SetUserContext(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// GetUserIDFromContext retrieves userID safely. Non-positive ids count as absent.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
