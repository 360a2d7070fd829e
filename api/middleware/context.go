package middleware

import (
	"context"

	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/google/uuid"
)

type contextKey string

const (
	ctxUserID    contextKey = "usuario_id"
	ctxRole      contextKey = "usuario_rol"
	ctxUserName  contextKey = "usuario_nombre"
	ctxSessionID contextKey = "session_id"
)

func UserIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxUserID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

func RoleFromContext(ctx context.Context) enums.UserRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.UserRole); ok {
		return v
	}
	return ""
}

func UserNameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserName).(string); ok {
		return v
	}
	return ""
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithSessionContext seeds the request context with the resolved session. Used
// by the session middleware and by handler tests.
func WithSessionContext(ctx context.Context, userID uuid.UUID, role enums.UserRole, name, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxRole, role)
	ctx = context.WithValue(ctx, ctxUserName, name)
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
