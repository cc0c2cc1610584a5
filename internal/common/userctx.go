package common

import "context"

// UserContext carries the authenticated identity resolved from a bearer token.
type UserContext struct {
	UserID string
	Role   string
}

type userContextKey struct{}

// WithUserContext returns a context carrying the given UserContext.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, uc)
}

// UserContextFrom extracts the UserContext from a context, or nil.
func UserContextFrom(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey{}).(*UserContext)
	return uc
}

// IsAdmin reports whether the context identity has the admin role.
func (uc *UserContext) IsAdmin() bool {
	return uc != nil && uc.Role == "admin"
}
