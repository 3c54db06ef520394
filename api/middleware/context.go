package middleware

import "context"

// Unexported key type keeps these values from colliding with other packages'
// context entries.
type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
)

// WithUserID stores the authenticated user's id on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole stores the authenticated user's role on the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// UserIDFromContext returns the stored user id, or "" when the request was
// not authenticated.
func UserIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUserID)
}

// RoleFromContext returns the stored role, or "" when the request was not
// authenticated.
func RoleFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxRole)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	val, _ := ctx.Value(key).(string)
	return val
}
