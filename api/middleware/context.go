package middleware

import (
	"context"

	"github.com/arontec/scm-backend/pkg/session"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the session identity seeded by Auth, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *session.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*session.Identity); ok {
		return v
	}
	return nil
}

// UserIDFromContext is a shortcut for handlers that only need the caller id.
func UserIDFromContext(ctx context.Context) int64 {
	if identity := IdentityFromContext(ctx); identity != nil {
		return identity.UserID
	}
	return 0
}

// WithIdentity injects a session identity into the context.
func WithIdentity(ctx context.Context, identity *session.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
